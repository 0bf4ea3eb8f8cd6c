package wpconfig

import "path/filepath"

const (
	KeyDBName            = "DB_NAME"
	KeyDBUser            = "DB_USER"
	KeyDBPassword        = "DB_PASSWORD"
	KeyDBHost            = "DB_HOST"
	KeyDBCharset         = "DB_CHARSET"
	KeyDBCollate         = "DB_COLLATE"
	KeyTablePrefix       = "TABLE_PREFIX"
	KeyHome              = "WP_HOME"
	KeySiteURL           = "WP_SITEURL"
	KeyContentDir        = "WP_CONTENT_DIR"
	KeyContentURL        = "WP_CONTENT_URL"
	KeyDebug             = "WP_DEBUG"
	KeyDebugLog          = "WP_DEBUG_LOG"
	KeyDebugDisplay      = "WP_DEBUG_DISPLAY"
	KeyScriptDebug       = "SCRIPT_DEBUG"
	KeyMemoryLimit       = "WP_MEMORY_LIMIT"
	KeyDisallowFileEdit  = "DISALLOW_FILE_EDIT"
	KeyDisallowFileMods  = "DISALLOW_FILE_MODS"
	KeyUpdaterDisabled   = "AUTOMATIC_UPDATER_DISABLED"
	KeyEnvironmentType   = "WP_ENVIRONMENT_TYPE"
	KeySaveQueries       = "SAVEQUERIES"
	KeyCache             = "WP_CACHE"
	KeyUnfilteredUploads = "ALLOW_UNFILTERED_UPLOADS"
	KeyRedisHost         = "WP_REDIS_HOST"
	KeyRedisPort         = "WP_REDIS_PORT"
	KeyRedisDatabase     = "WP_REDIS_DATABASE"
	KeyCacheKeySalt      = "WP_CACHE_KEY_SALT"
	KeyAllowMultisite    = "WP_ALLOW_MULTISITE"
	KeyDomainCurrentSite = "DOMAIN_CURRENT_SITE"
	KeyPathCurrentSite   = "PATH_CURRENT_SITE"
	KeyABSPath           = "ABSPATH"

	EnvEnvironment    = "WP_ENV"
	EnvMultisite      = "WP_MULTISITE"
	EnvMultisiteHost  = "MULTISITE_DOMAIN"
	EnvMultisitePath  = "MULTISITE_PATH"
	EnvironmentDev    = "development"
	EnvironmentProd   = "production"
	defaultRedisPort  = 6379
	defaultMemLimit   = "256M"
	defaultCharset    = "utf8mb4"
	defaultPrefix     = "wp_"
	contentDirName    = "wp-content"
	coreDirName       = "wp"
	cacheDisableToken = "false"
)

// SecretKeys are the authentication keys and salts. Every one is required.
var SecretKeys = []string{
	"AUTH_KEY",
	"SECURE_AUTH_KEY",
	"LOGGED_IN_KEY",
	"NONCE_KEY",
	"AUTH_SALT",
	"SECURE_AUTH_SALT",
	"LOGGED_IN_SALT",
	"NONCE_SALT",
}

// Setting describes how one constant is resolved.
type Setting struct {
	Key      string
	Env      string
	Kind     Kind
	Required bool
	Default  Value

	fallback func(*builder) Value
	when     func(*builder) (bool, error)
	resolve  func(*builder) (Value, bool, error)
}

func (s Setting) source() string {
	if s.Env != "" {
		return s.Env
	}
	return s.Key
}

// Source is the environment variable the setting is read from, or "" for
// constants derived from other settings.
func (s Setting) Source() string {
	if s.resolve != nil && s.Env == "" {
		return ""
	}
	return s.source()
}

// Conditional reports whether the setting is only defined in some environments.
func (s Setting) Conditional() bool {
	return s.when != nil
}

func required(key string) Setting {
	return Setting{Key: key, Kind: KindString, Required: true}
}

func optional(key, def string) Setting {
	return Setting{Key: key, Kind: KindString, Default: StringValue(def)}
}

func boolean(key string, def bool) Setting {
	return Setting{Key: key, Kind: KindBool, Default: BoolValue(def)}
}

func integer(key string, def int) Setting {
	return Setting{Key: key, Kind: KindInt, Default: IntValue(def)}
}

func derived(key string, kind Kind, fn func(*builder) Value) Setting {
	return Setting{
		Key:  key,
		Kind: kind,
		resolve: func(b *builder) (Value, bool, error) {
			return fn(b), true, nil
		},
	}
}

func (s Setting) from(env string) Setting {
	s.Env = env
	return s
}

func (s Setting) onlyIf(fn func(*builder) (bool, error)) Setting {
	s.when = fn
	return s
}

func (s Setting) defaultFrom(fn func(*builder) Value) Setting {
	s.fallback = fn
	return s
}

func development(b *builder) (bool, error) {
	return b.set.Environment() == EnvironmentDev, nil
}

func redisConfigured(b *builder) (bool, error) {
	return b.loader.opts.RedisAvailable && b.present(KeyRedisHost), nil
}

func multisite(b *builder) (bool, error) {
	return b.flag(EnvMultisite, false)
}

func definedIfPresent(env string) func(*builder) (Value, bool, error) {
	return func(b *builder) (Value, bool, error) {
		v, ok := b.loader.lookup(env)
		if !ok || v == "" {
			return Value{}, false, nil
		}
		return StringValue(v), true, nil
	}
}

var policy = buildPolicy()

func buildPolicy() []Setting {
	p := []Setting{
		required(KeyDBName),
		required(KeyDBUser),
		required(KeyDBPassword),
		required(KeyDBHost),
		optional(KeyDBCharset, defaultCharset),
		optional(KeyDBCollate, ""),
		optional(KeyTablePrefix, defaultPrefix),

		required(KeyHome),
		required(KeySiteURL),
		derived(KeyContentDir, KindString, func(b *builder) Value {
			return StringValue(filepath.Join(b.loader.opts.Root, contentDirName))
		}),
		derived(KeyContentURL, KindString, func(b *builder) Value {
			return StringValue(b.set.String(KeyHome) + "/" + contentDirName)
		}),
	}

	for _, key := range SecretKeys {
		p = append(p, required(key))
	}

	p = append(p,
		boolean(KeyDebug, false),
		boolean(KeyDebugLog, false),
		boolean(KeyDebugDisplay, false),
		derived(KeyScriptDebug, KindBool, func(b *builder) Value {
			return BoolValue(b.set.Bool(KeyDebug))
		}),

		optional(KeyMemoryLimit, defaultMemLimit),
		boolean(KeyDisallowFileEdit, false),
		boolean(KeyDisallowFileMods, false),
		boolean(KeyUpdaterDisabled, false),

		optional(KeyEnvironmentType, EnvironmentProd).from(EnvEnvironment),
		boolean(KeySaveQueries, true).onlyIf(development),
		Setting{Key: KeyCache, Kind: KindBool, resolve: func(b *builder) (Value, bool, error) {
			if b.loader.GetOptional(KeyCache, "true") == cacheDisableToken {
				return BoolValue(false), true, nil
			}
			return Value{}, false, nil
		}}.from(KeyCache).onlyIf(development),
		Setting{Key: KeyUnfilteredUploads, Kind: KindBool, resolve: func(b *builder) (Value, bool, error) {
			allow, err := b.flag(KeyUnfilteredUploads, false)
			if err != nil || !allow {
				return Value{}, false, err
			}
			return BoolValue(true), true, nil
		}}.from(KeyUnfilteredUploads).onlyIf(development),

		optional(KeyRedisHost, "").onlyIf(redisConfigured),
		integer(KeyRedisPort, defaultRedisPort).onlyIf(redisConfigured),
		integer(KeyRedisDatabase, 0).onlyIf(redisConfigured),
		optional(KeyCacheKeySalt, "").defaultFrom(func(b *builder) Value {
			return StringValue(b.set.String(KeyHome))
		}).onlyIf(redisConfigured),

		derived(KeyAllowMultisite, KindBool, func(*builder) Value {
			return BoolValue(true)
		}).onlyIf(multisite),
		Setting{Key: KeyDomainCurrentSite, Kind: KindString, resolve: definedIfPresent(EnvMultisiteHost)}.
			from(EnvMultisiteHost).onlyIf(multisite),
		Setting{Key: KeyPathCurrentSite, Kind: KindString, resolve: definedIfPresent(EnvMultisitePath)}.
			from(EnvMultisitePath).onlyIf(multisite),

		derived(KeyABSPath, KindString, func(b *builder) Value {
			return StringValue(filepath.Join(b.loader.opts.Root, coreDirName) + "/")
		}),
	)
	return p
}

// Policy returns the ordered setting descriptors Build evaluates.
func Policy() []Setting {
	out := make([]Setting, len(policy))
	copy(out, policy)
	return out
}
