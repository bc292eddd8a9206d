package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-engagement-ingest/internal/telegram"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// TelegramImpl is a no-op when no bot token is configured.
type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	User   int64
}

func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("TelegramNotifier")

	if opts.Config.Telegram.Token == "" {
		log.Info("Telegram token not set, notifications disabled")
		return &TelegramImpl{Logger: log}, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		log.Error("Error creating bot", "Error", err)
		return nil, err
	}

	return &TelegramImpl{
		TgBot:  tgBot,
		Logger: log,
		User:   opts.Config.Telegram.User,
	}, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)

var Module = fx.Module("telegram",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(telegram.Client)),
		),
	),
)
