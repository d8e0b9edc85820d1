package config

import (
	"testing"
	"time"

	"launchpad-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.VotingPeriod)
	assert.True(t, cfg.VotingQuorum.IsZero())
	assert.Equal(t, domain.MintExact, cfg.MintPolicy)
	assert.Equal(t, time.Duration(0), cfg.FundingPeriod)
	assert.Equal(t, 24*time.Hour, cfg.InvestorCliff)
	assert.Equal(t, 240*time.Hour, cfg.OwnerDuration)
	assert.Equal(t, 100, cfg.PageSizeMax)
	assert.Equal(t, "treasury", cfg.TreasuryAccount)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("VOTING_PERIOD", "90s")
	t.Setenv("VOTING_QUORUM", "12.5")
	t.Setenv("MINT_POLICY", "Deadline")
	t.Setenv("FUNDING_PERIOD", "2d")
	t.Setenv("PAGE_SIZE_MAX", "20")
	t.Setenv("VOTE_WEIGHT_TOKEN", "token:gov")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())

	st := cfg.PlatformSettings()
	assert.Equal(t, 90*time.Second, st.VotingPeriod)
	assert.Equal(t, "12.5", st.Quorum.String())
	assert.Equal(t, domain.MintDeadline, st.Policy)
	assert.Equal(t, 48*time.Hour, st.FundingPeriod)
	assert.Equal(t, 20, st.MaxPageSize)
	assert.Equal(t, "token:gov", st.VoteWeightToken)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"VOTING_PERIOD":          "soon",
		"VOTING_QUORUM":          "lots",
		"MINT_POLICY":            "whenever",
		"PAGE_SIZE_MAX":          "0",
		"VESTING_OWNER_DURATION": "-1d",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("")
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = parseDuration("3d")
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, d)

	d, err = parseDuration("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	_, err = parseDuration("-5m")
	assert.Error(t, err)
}
