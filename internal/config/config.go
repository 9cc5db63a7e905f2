package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	JWT      JWT      `envPrefix:"JWT_"`
	Payment  Payment  `envPrefix:"PAYMENT_"`
	ImageCDN ImageCDN `envPrefix:"IMAGE_CDN_"`
	Guard    Guard    `envPrefix:"GUARD_"`
	Kafka    Kafka    `envPrefix:"KAFKA_"`
}

// Payment configures the external payment gateway (PayPal-style REST API).
type Payment struct {
	BaseApiURL   string `env:"BASE_API_URL"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

// ImageCDN configures the external image store that turns uploaded files
// into durable URLs.
type ImageCDN struct {
	UploadURL string `env:"UPLOAD_URL"`
	APIKey    string `env:"API_KEY"`
	Folder    string `env:"FOLDER" envDefault:"ecommerce"`
}

// Guard configures the pre-request abuse-protection gate. Empty CheckURL
// disables the gate entirely.
type Guard struct {
	CheckURL string `env:"CHECK_URL"`
	APIKey   string `env:"API_KEY"`
}

// Kafka configures the order-placed event publisher. Empty Brokers disables
// publishing.
type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"storefront.orders"`
}

type JWT struct {
	Secret     string `env:"SECRET"`
	CookieName string `env:"COOKIE_NAME" envDefault:"accessToken"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
