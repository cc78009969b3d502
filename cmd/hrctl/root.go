package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/odyssey-erp/hrportal/internal/auth"
	"github.com/odyssey-erp/hrportal/internal/masterdata"
	"github.com/odyssey-erp/hrportal/internal/platform/apiclient"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// env is read before flags; flags win when set.
type env struct {
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://127.0.0.1:5000/api/"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	Token      string        `envconfig:"HR_API_TOKEN"`
	User       string        `envconfig:"HR_API_USER" default:"hrctl"`
	PageSize   int           `envconfig:"LIST_PAGE_SIZE" default:"5"`
}

var (
	flagAPI      string
	flagToken    string
	flagUser     string
	flagPageSize int
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "hrctl",
	Short:         "Inspect and toggle HR master data lists from the terminal.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "HR API base URL (default $API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "bearer token (default $HR_API_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "username recorded as the modifier (default $HR_API_USER)")
	rootCmd.PersistentFlags().IntVar(&flagPageSize, "page-size", 0, "rows per page (default $LIST_PAGE_SIZE)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log API calls to stderr")

	rootCmd.AddCommand(golonganCmd(), benefitCmd(), jabatanCmd(), jenisIzinCmd(), strukturCmd())
}

// runtime is what every list command needs: services bound to one API and the
// operator's session.
type runtime struct {
	services masterdata.Services
	session  auth.Session
	pageSize int
}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	var e env
	if err := envconfig.Process("", &e); err != nil {
		return nil, err
	}
	if flagAPI != "" {
		e.APIBaseURL = flagAPI
	}
	if flagToken != "" {
		e.Token = flagToken
	}
	if flagUser != "" {
		e.User = flagUser
	}
	if flagPageSize > 0 {
		e.PageSize = flagPageSize
	}
	if e.Token == "" {
		return nil, errors.New("token wajib diisi (--token atau HR_API_TOKEN)")
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	client := apiclient.New(apiclient.Config{
		BaseURL: e.APIBaseURL,
		Timeout: e.APITimeout,
		Logger:  logger,
	})
	return &runtime{
		services: masterdata.NewServices(client),
		session:  operatorSession(e.Token, e.User),
		pageSize: e.PageSize,
	}, nil
}

// operatorSession grants every master data permission; the API still
// authorises each call against the token.
func operatorSession(token, user string) auth.Session {
	return auth.Session{
		Token:   token,
		SSO:     &auth.SSOData{Username: user, App: "hrctl"},
		Profile: &auth.Profile{Username: user, Name: user, Permissions: shared.MasterDataScopes()},
	}
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
