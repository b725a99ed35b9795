package image

// Config holds configuration for image normalization.
type Config struct {
	// MaxUploadBytes is the input size ceiling enforced before decoding.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" default:"5242880"`
	// Quality is the JPEG re-encode quality (1-100).
	Quality int `mapstructure:"quality" default:"80"`

	// ContentMaxWidth/Height bound covers normalized for storage/serving.
	ContentMaxWidth  int `mapstructure:"content_max_width" default:"800"`
	ContentMaxHeight int `mapstructure:"content_max_height" default:"1200"`

	// TransferMaxWidth/Height bound client-submitted images compressed
	// before transfer. Same algorithm as the content bounds, different
	// parameters.
	TransferMaxWidth  int `mapstructure:"transfer_max_width" default:"400"`
	TransferMaxHeight int `mapstructure:"transfer_max_height" default:"400"`
}
