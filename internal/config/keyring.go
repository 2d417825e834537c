package config

import (
	"os"

	"github.com/zalando/go-keyring"

	"reviewlens/pkg/models"
)

const keyringService = "reviewlens"

// StorePassword saves the Snowflake password in the OS keyring
func StorePassword(username, password string) error {
	return keyring.Set(keyringService, username, password)
}

// DeletePassword removes a stored password from the OS keyring
func DeletePassword(username string) error {
	err := keyring.Delete(keyringService, username)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}

// ResolvePassword returns the Snowflake password for a config, checking the
// keyring (when enabled), then the config file value, then the environment.
func ResolvePassword(sf models.Snowflake) string {
	if sf.UseKeyring {
		if pw, err := keyring.Get(keyringService, sf.Username); err == nil && pw != "" {
			return pw
		}
	}
	if sf.Password != "" {
		return sf.Password
	}
	return os.Getenv("SNOWFLAKE_PASSWORD")
}
