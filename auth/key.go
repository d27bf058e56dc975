package auth

import (
	"fmt"
	"os"
)

const (
	SigningKeyEnvVar = "BOOKSHELF_JWT_KEY"
)

// SigningKeyFromEnv reads the signing key from varname and clears the
// variable, so child processes never see it.
func SigningKeyFromEnv(varname string, getfn func(string) string, setfn func(string, string) error) ([]byte, error) {
	if getfn == nil {
		getfn = os.Getenv
	}
	if setfn == nil {
		setfn = os.Setenv
	}
	val := getfn(varname)
	setfn(varname, "")
	if len(val) == 0 {
		return nil, fmt.Errorf("auth: signing key is not configured, set %v", varname)
	} else if len(val) < MinKeySize {
		return nil, fmt.Errorf("auth: signing key in %v too short got %v expecting at least %v bytes", varname, len(val), MinKeySize)
	}
	return []byte(val), nil
}
