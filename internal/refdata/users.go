// Package refdata embeds the static reference dataset of known user
// profiles, used once per device to bootstrap a profile for a first-time
// login that matches an existing account.
package refdata

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
)

//go:embed users.json
var usersFile []byte

var (
	loadOnce sync.Once
	users    []model.Profile
)

func load() []model.Profile {
	loadOnce.Do(func() {
		var dataset struct {
			Users []model.Profile `json:"users"`
		}
		if err := json.Unmarshal(usersFile, &dataset); err != nil {
			// The file is compiled in; a decode failure is a build defect.
			panic("refdata: corrupt users.json: " + err.Error())
		}
		users = dataset.Users
	})
	return users
}

// Lookup finds the reference profile with the given external identity id.
func Lookup(auth0ID string) (model.Profile, bool) {
	if auth0ID == "" {
		return model.Profile{}, false
	}
	for _, p := range load() {
		if p.Auth0ID == auth0ID {
			return p, true
		}
	}
	return model.Profile{}, false
}
