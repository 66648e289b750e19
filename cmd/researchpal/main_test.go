// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/da-ros/researchpal/internal/export"
	"github.com/da-ros/researchpal/internal/secrets"
	"github.com/da-ros/researchpal/pkg/types"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("RESEARCHPAL_API_BASE_URL", "http://api.example:9000")
	t.Setenv("RESEARCHPAL_API_TIMEOUT", "5s")
	t.Setenv("RESEARCHPAL_RECENT_MAX", "3")
	loadedSecrets = secrets.Secrets{secrets.APIToken: "from-file"}
	t.Cleanup(func() { loadedSecrets = nil })

	initConfig()
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://api.example:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 0, cfg.API.RateLimitRetries)
	assert.Equal(t, 3, cfg.Recent.Max)
	assert.Equal(t, "from-file", cfg.API.Token)
	assert.True(t, strings.HasSuffix(cfg.Storage.Path, "local.db"))
}

func TestLoadConfig_ExplicitTokenWins(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("RESEARCHPAL_API_TOKEN", "from-env")
	loadedSecrets = secrets.Secrets{secrets.APIToken: "from-file"}
	t.Cleanup(func() { loadedSecrets = nil })

	initConfig()
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Token)
}

func TestWritePapers(t *testing.T) {
	recs := []types.PaperRecord{types.NewPaperRecord("a"), types.NewPaperRecord("b")}

	var buf bytes.Buffer
	require.NoError(t, writePapers(&buf, recs[:1], export.FormatJSON))
	var one types.PaperRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &one))
	assert.Equal(t, "a", one.ArxivID)

	buf.Reset()
	require.NoError(t, writePapers(&buf, recs, export.FormatJSON))
	var many []types.PaperRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &many))
	assert.Len(t, many, 2)

	buf.Reset()
	require.NoError(t, writePapers(&buf, recs, export.FormatTable))
	assert.Contains(t, buf.String(), "Paper a")
	assert.Contains(t, buf.String(), "Paper b")
}

func TestVersionOutput(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "researchpal "+version+"\n", buf.String())
	assert.Equal(t, version, rootCmd.Version)
}
