package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"launchpad-backend/internal/application/platform"
	"launchpad-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string

	VotingPeriod    time.Duration
	VotingQuorum    decimal.Decimal
	VoteWeightToken string
	MintPolicy      domain.MintPolicy
	FundingPeriod   time.Duration
	PageSizeMax     int

	InvestorCliff    time.Duration
	InvestorDuration time.Duration
	OwnerCliff       time.Duration
	OwnerDuration    time.Duration

	LaunchpadAccount string
	EscrowAccount    string
	VestingAccount   string
	TreasuryAccount  string
	VaultAccount     string

	AdminAddress string
	AdminSecret  string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("VOTING_PERIOD", "5m")
	v.SetDefault("VOTING_QUORUM", "0")
	v.SetDefault("MINT_POLICY", string(domain.MintExact))
	v.SetDefault("FUNDING_PERIOD", "0")
	v.SetDefault("PAGE_SIZE_MAX", 100)
	v.SetDefault("VESTING_INVESTOR_CLIFF", "1d")
	v.SetDefault("VESTING_INVESTOR_DURATION", "10d")
	v.SetDefault("VESTING_OWNER_CLIFF", "3d")
	v.SetDefault("VESTING_OWNER_DURATION", "10d")
	v.SetDefault("LAUNCHPAD_ACCOUNT", "launchpad")
	v.SetDefault("ESCROW_ACCOUNT", "escrow")
	v.SetDefault("VESTING_ACCOUNT", "vesting")
	v.SetDefault("TREASURY_ACCOUNT", "treasury")
	v.SetDefault("LP_VAULT_ACCOUNT", "lp-vault")

	cfg := &Config{
		Env:                 v.GetString("APP_ENV"),
		Port:                v.GetString("PORT"),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		RedisURL:            v.GetString("REDIS_URL"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(v.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		VoteWeightToken:     v.GetString("VOTE_WEIGHT_TOKEN"),
		LaunchpadAccount:    v.GetString("LAUNCHPAD_ACCOUNT"),
		EscrowAccount:       v.GetString("ESCROW_ACCOUNT"),
		VestingAccount:      v.GetString("VESTING_ACCOUNT"),
		TreasuryAccount:     v.GetString("TREASURY_ACCOUNT"),
		VaultAccount:        v.GetString("LP_VAULT_ACCOUNT"),
		AdminAddress:        v.GetString("ADMIN_ADDRESS"),
		AdminSecret:         v.GetString("ADMIN_SECRET"),
	}

	var err error
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"VOTING_PERIOD", &cfg.VotingPeriod},
		{"FUNDING_PERIOD", &cfg.FundingPeriod},
		{"VESTING_INVESTOR_CLIFF", &cfg.InvestorCliff},
		{"VESTING_INVESTOR_DURATION", &cfg.InvestorDuration},
		{"VESTING_OWNER_CLIFF", &cfg.OwnerCliff},
		{"VESTING_OWNER_DURATION", &cfg.OwnerDuration},
	}
	for _, d := range durations {
		if *d.dst, err = parseDuration(v.GetString(d.key)); err != nil {
			return nil, fmt.Errorf("config %s: %w", d.key, err)
		}
	}
	if cfg.VotingPeriod <= 0 {
		return nil, fmt.Errorf("config VOTING_PERIOD: must be positive")
	}
	if cfg.InvestorDuration <= 0 || cfg.OwnerDuration <= 0 {
		return nil, fmt.Errorf("config vesting durations must be positive")
	}

	if cfg.VotingQuorum, err = decimal.NewFromString(strings.TrimSpace(v.GetString("VOTING_QUORUM"))); err != nil {
		return nil, fmt.Errorf("config VOTING_QUORUM: %w", err)
	}
	if cfg.VotingQuorum.IsNegative() {
		return nil, fmt.Errorf("config VOTING_QUORUM: must not be negative")
	}
	policy, ok := domain.ParseMintPolicy(v.GetString("MINT_POLICY"))
	if !ok {
		return nil, fmt.Errorf("config MINT_POLICY: unknown policy %q", v.GetString("MINT_POLICY"))
	}
	cfg.MintPolicy = policy
	if cfg.PageSizeMax, err = strconv.Atoi(strings.TrimSpace(v.GetString("PAGE_SIZE_MAX"))); err != nil || cfg.PageSizeMax <= 0 {
		return nil, fmt.Errorf("config PAGE_SIZE_MAX: invalid value %q", v.GetString("PAGE_SIZE_MAX"))
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// PlatformSettings converts the loaded values into service settings.
func (c *Config) PlatformSettings() platform.Settings {
	return platform.Settings{
		VotingPeriod:     c.VotingPeriod,
		Quorum:           c.VotingQuorum,
		VoteWeightToken:  c.VoteWeightToken,
		Policy:           c.MintPolicy,
		FundingPeriod:    c.FundingPeriod,
		MaxPageSize:      c.PageSizeMax,
		LaunchpadAccount: c.LaunchpadAccount,
		EscrowAccount:    c.EscrowAccount,
		VestingAccount:   c.VestingAccount,
		TreasuryAccount:  c.TreasuryAccount,
		VaultAccount:     c.VaultAccount,
		InvestorCliff:    c.InvestorCliff,
		InvestorDuration: c.InvestorDuration,
		OwnerCliff:       c.OwnerCliff,
		OwnerDuration:    c.OwnerDuration,
	}
}

// parseDuration accepts Go durations plus a whole-day form such as "10d".
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
