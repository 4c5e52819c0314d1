package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test. It
// stands in for testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultServiceURL, cfg.ServiceURL)
	assert.Equal(t, DefaultVerifyURL, cfg.VerifyURL)
	assert.Equal(t, DefaultVerifyAction, cfg.VerifyAction)
	assert.Empty(t, cfg.VerifySiteKey)
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	content := []byte(`service_url: http://localhost:8080
verify_site_key: test-site-key
verify_url: http://localhost:9090
verify_action: upload
`)
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "imgshift.yaml"), content, 0o644))
	chdir(t, tempDir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.ServiceURL)
	assert.Equal(t, "test-site-key", cfg.VerifySiteKey)
	assert.Equal(t, "http://localhost:9090", cfg.VerifyURL)
	assert.Equal(t, "upload", cfg.VerifyAction)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("IMGSHIFT_VERIFY_SITE_KEY", "env-site-key")
	t.Setenv("IMGSHIFT_SERVICE_URL", "https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-site-key", cfg.VerifySiteKey)
	assert.Equal(t, "https://staging.example.com", cfg.ServiceURL)
}

func TestLoadMalformedFile(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "imgshift.yaml"), []byte("service_url: [unclosed"), 0o644))
	chdir(t, tempDir)

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AppConfig
		wantErr bool
	}{
		{
			name: "valid with site key",
			cfg: AppConfig{
				ServiceURL:    "https://api.example.com",
				VerifySiteKey: "key",
				VerifyURL:     "https://verify.example.com",
				VerifyAction:  "convert",
			},
		},
		{
			name: "valid without site key",
			cfg: AppConfig{
				ServiceURL:   "https://api.example.com",
				VerifyURL:    "https://verify.example.com",
				VerifyAction: "convert",
			},
		},
		{
			name: "empty service url",
			cfg: AppConfig{
				VerifyURL:    "https://verify.example.com",
				VerifyAction: "convert",
			},
			wantErr: true,
		},
		{
			name: "service url without scheme",
			cfg: AppConfig{
				ServiceURL:   "api.example.com",
				VerifyURL:    "https://verify.example.com",
				VerifyAction: "convert",
			},
			wantErr: true,
		},
		{
			name: "verify url with bad scheme",
			cfg: AppConfig{
				ServiceURL:   "https://api.example.com",
				VerifyURL:    "ftp://verify.example.com",
				VerifyAction: "convert",
			},
			wantErr: true,
		},
		{
			name: "empty verify action",
			cfg: AppConfig{
				ServiceURL: "https://api.example.com",
				VerifyURL:  "https://verify.example.com",
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.cfg.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
