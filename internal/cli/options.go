package cli

// SessionKeysEnv names the variable holding hex AES-256 keys that encrypt
// stored sessions, comma separated with the active key first.
const SessionKeysEnv = "MARQUEE_SESSION_KEYS"

// Options carries the flags shared by the playback commands.
type Options struct {
	Path        string // YAML scene graph file or loam project directory
	EventID     string // empty plays the first event
	SessionID   string
	RedisURL    string // takes precedence over SessionDB and SessionDir
	SessionDB   string // sqlite database path
	SessionDir  string // file store used otherwise, file.DefaultDir when empty
	SessionKeys string // see SessionKeysEnv
	FPS         int
	Watch       bool
	Hold        bool
	JSON        bool
	Quiet       bool
	LogLevel    string // empty disables logging
	LogJSON     bool
}
