// config - источник загрузки конфигурации витрины.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// Перед чтением подхватывается ./.env (godotenv), уже выставленные
// переменные окружения он не перетирает.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
	Instamojo InstamojoConfig `yaml:"instamojo"`
	Token     TokenConfig     `yaml:"token"`
	Email     EmailConfig     `yaml:"email"`
	Product   ProductConfig   `yaml:"product"`
	Downloads DownloadsConfig `yaml:"downloads"`
	S3        S3Config        `yaml:"s3"`
	Site      SiteConfig      `yaml:"site"`
	DB        DBConfig        `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// TimeoutConfig — таймауты запросов и внешних вызовов.
type TimeoutConfig struct {
	Service  time.Duration `yaml:"service"  env:"SERVICE_TIMEOUT"  env-default:"45s"`
	Gateway  time.Duration `yaml:"gateway"  env:"GATEWAY_TIMEOUT"  env-default:"30s"`
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// HTTPConfig — публичный HTTP-сервер.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// InstamojoConfig — платёжный шлюз.
// Ключи необязательны на старте: без них create-payment отвечает 500.
type InstamojoConfig struct {
	BaseURL   string `yaml:"base_url"   env:"INSTAMOJO_API_URL"    env-default:"https://www.instamojo.com/api/1.1"`
	APIKey    string `yaml:"api_key"    env:"INSTAMOJO_API_KEY"`
	AuthToken string `yaml:"auth_token" env:"INSTAMOJO_AUTH_TOKEN"`
	Salt      string `yaml:"salt"       env:"INSTAMOJO_SALT"`
	// SkipWebhookVerification — единственный способ отключить проверку MAC.
	// Включение логируется при старте и на каждом вебхуке.
	SkipWebhookVerification bool `yaml:"skip_webhook_verification" env:"INSTAMOJO_SKIP_WEBHOOK_VERIFICATION" env-default:"false"`
}

// TokenConfig — подпись ссылок на скачивание. Секрет обязателен, запасного значения нет.
type TokenConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"   env-required:"true"`
	TTL    time.Duration `yaml:"ttl"    env:"TOKEN_TTL"    env-default:"8760h"`
	Issuer string        `yaml:"issuer" env:"TOKEN_ISSUER" env-default:"simplequran"`
}

// EmailConfig — отправка писем через SMTP-релей SendGrid.
type EmailConfig struct {
	SMTPHost       string `yaml:"smtp_host"       env:"SMTP_HOST"             env-default:"smtp.sendgrid.net"`
	SMTPPort       string `yaml:"smtp_port"       env:"SMTP_PORT"             env-default:"587"`
	SMTPUser       string `yaml:"smtp_user"       env:"SMTP_USER"             env-default:"apikey"`
	APIKey         string `yaml:"api_key"         env:"SENDGRID_API_KEY"`
	FromEmail      string `yaml:"from_email"      env:"SENDGRID_FROM_EMAIL"   env-default:"support@simplequran.in"`
	FromName       string `yaml:"from_name"       env:"SENDGRID_FROM_NAME"    env-default:"Simple Quran"`
	SupportEmail   string `yaml:"support_email"   env:"SUPPORT_EMAIL"         env-default:"support@simplequran.in"`
	EnquiryContact string `yaml:"enquiry_contact" env:"ENQUIRY_CONTACT_EMAIL" env-default:"info.simplequran@gmail.com"`

	// SendTimeout ограничивает весь SMTP-сеанс, даже без дедлайна у контекста.
	SendTimeout time.Duration `yaml:"send_timeout" env:"SMTP_SEND_TIMEOUT" env-default:"20s"`
}

func (e EmailConfig) Addr() string { return net.JoinHostPort(e.SMTPHost, e.SMTPPort) }

// ProductConfig — цена и название определяются только сервером.
type ProductConfig struct {
	Name              string `yaml:"name"                env:"PRODUCT_NAME"        env-default:"Simple Quran - Complete Bundle"`
	Price             string `yaml:"price"               env:"PRODUCT_PRICE"       env-default:"249"`
	HardcopyUnitPrice string `yaml:"hardcopy_unit_price" env:"HARDCOPY_UNIT_PRICE" env-default:"3500"`
}

// PriceAmount возвращает цену; корректность гарантирует Validate.
func (p ProductConfig) PriceAmount() decimal.Decimal {
	d, _ := decimal.NewFromString(p.Price)
	return d
}

// HardcopyUnitAmount возвращает цену бумажного экземпляра.
func (p ProductConfig) HardcopyUnitAmount() decimal.Decimal {
	d, _ := decimal.NewFromString(p.HardcopyUnitPrice)
	return d
}

// DownloadsConfig — статические ссылки на PDF и режим сверки с журналом заказов.
type DownloadsConfig struct {
	LinkV1       string `yaml:"link_v1"       env:"EBOOK_DOWNLOAD_LINK_V1"`
	LinkV2       string `yaml:"link_v2"       env:"EBOOK_DOWNLOAD_LINK_V2"`
	RequireOrder bool   `yaml:"require_order" env:"DOWNLOADS_REQUIRE_ORDER" env-default:"false"`
}

// S3Config — бакет с PDF. Пустой Endpoint означает статические ссылки.
type S3Config struct {
	Endpoint   string        `yaml:"endpoint"    env:"S3_ENDPOINT"`
	AccessKey  string        `yaml:"access_key"  env:"S3_ACCESS_KEY"`
	SecretKey  string        `yaml:"secret_key"  env:"S3_SECRET_KEY"`
	Bucket     string        `yaml:"bucket"      env:"S3_BUCKET"      env-default:"ebooks"`
	KeyV1      string        `yaml:"key_v1"      env:"S3_KEY_V1"      env-default:"simple-quran-v1.pdf"`
	KeyV2      string        `yaml:"key_v2"      env:"S3_KEY_V2"      env-default:"simple-quran-v2.pdf"`
	PresignTTL time.Duration `yaml:"presign_ttl" env:"S3_PRESIGN_TTL" env-default:"1h"`
}

func (s S3Config) Enabled() bool { return s.Endpoint != "" }

// SiteConfig — публичный адрес сайта для ссылок в письмах.
type SiteConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL" env-default:"https://simplequran.in"`
}

// DBConfig — журнал заказов. Пустой DatabaseURL означает журнал в памяти.
type DBConfig struct {
	DatabaseURL    string `yaml:"db_url"          env:"DATABASE_URL"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"file://migrations"`
}

type RedisConfig struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
}

// RateLimitConfig — лимит на формы заявок с одного IP.
type RateLimitConfig struct {
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"5"`
	Window   time.Duration `yaml:"window"   env:"RATE_LIMIT_WINDOW"   env-default:"1m"`
}

// Validate проверяет значения, которые cleanenv не может проверить сам.
func (c *Config) Validate() error {
	if err := validateHTTPURL("site.base_url", c.Site.BaseURL); err != nil {
		return err
	}

	if err := validateHTTPURL("instamojo.base_url", c.Instamojo.BaseURL); err != nil {
		return err
	}

	if err := validateAmount("product.price", c.Product.Price); err != nil {
		return err
	}

	if err := validateAmount("product.hardcopy_unit_price", c.Product.HardcopyUnitPrice); err != nil {
		return err
	}

	if c.Token.Secret == "" {
		return errors.New("token.secret is required")
	}

	if c.Token.TTL <= 0 {
		return errors.New("token.ttl must be positive")
	}

	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("rate_limit.requests and rate_limit.window must be positive")
	}

	return nil
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s: %q is not an absolute http(s) url", name, raw)
	}

	return nil
}

func validateAmount(name, raw string) error {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", name, raw)
	}

	if !d.IsPositive() {
		return fmt.Errorf("%s: must be positive", name)
	}

	return nil
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func read(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
