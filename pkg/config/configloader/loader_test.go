package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Storage struct {
		Backend   string `koanf:"backend"`
		KeyPrefix string `koanf:"keyprefix"`
	} `koanf:"storage"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func (c *testConfig) Validate() error {
	if c.Storage.Backend == "invalid" {
		return errors.New("invalid backend")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Load(t *testing.T) {
	testCases := []struct {
		name        string
		yaml        string
		dotenv      string
		env         map[string]string
		wantBackend string
		wantPrefix  string
		wantLevel   string
		expectErr   bool
	}{
		{
			name:        "yaml only",
			yaml:        "storage:\n  backend: redis\n  keyprefix: shop\nlog:\n  level: debug\n",
			wantBackend: "redis",
			wantPrefix:  "shop",
			wantLevel:   "debug",
		},
		{
			name:        ".env overrides yaml",
			yaml:        "storage:\n  backend: redis\nlog:\n  level: debug\n",
			dotenv:      "CART_STORAGE_BACKEND=postgres\nOTHER_LOG_LEVEL=error\n",
			wantBackend: "postgres",
			wantLevel:   "debug",
		},
		{
			name:        "system env has the highest priority",
			yaml:        "storage:\n  backend: redis\n",
			dotenv:      "CART_STORAGE_BACKEND=postgres\n",
			env:         map[string]string{"CART_STORAGE_BACKEND": "mysql", "CART_LOG_LEVEL": "warn"},
			wantBackend: "mysql",
			wantLevel:   "warn",
		},
		{
			name:      "validation error",
			yaml:      "storage:\n  backend: invalid\n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			dir := t.TempDir()
			cfgFile := writeFile(t, dir, "config.yaml", tc.yaml)
			envFile := filepath.Join(dir, ".env")
			if tc.dotenv != "" {
				envFile = writeFile(t, dir, ".env", tc.dotenv)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			// when
			cfg, err := Load[*testConfig]("cart", WithConfigFile(cfgFile), WithEnvFile(envFile))

			// then
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBackend, cfg.Storage.Backend)
			assert.Equal(t, tc.wantPrefix, cfg.Storage.KeyPrefix)
			assert.Equal(t, tc.wantLevel, cfg.Log.Level)
		})
	}
}

func Test_keyTransformer(t *testing.T) {
	transform := keyTransformer("CART_")
	assert.Equal(t, "storage.backend", transform("CART_STORAGE_BACKEND"))
	assert.Equal(t, "ui.checkoutpage", transform("CART_UI_CHECKOUTPAGE"))
}
