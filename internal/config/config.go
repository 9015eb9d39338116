package config

type Config struct {
	Telegram Telegram
	DataFile string `env:"DATA_FILE" envDefault:"expenses.json"`
}

type Telegram struct {
	Token   string `env:"TELEGRAM_BOT_TOKEN,required"`
	Timeout int    `env:"TIMEOUT" envDefault:"60"`
}
