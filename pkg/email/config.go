package email

// Config selects the sender and holds its settings.
type Config struct {
	Driver               string `env:"MAIL_DRIVER" envDefault:"dev"`
	DevDir               string `env:"MAIL_DEV_DIR" envDefault:".mail"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
	ReplyTo              string `env:"SUPPORT_EMAIL"`
}

// Supported drivers.
const (
	DriverDev      = "dev"
	DriverPostmark = "postmark"
)
