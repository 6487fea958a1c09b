package common

// PrefixEnvVar joins an env-var prefix and suffix with an underscore,
// e.g. PrefixEnvVar("ORACLE_NODE", "DB_PATH") -> "ORACLE_NODE_DB_PATH".
func PrefixEnvVar(prefix, suffix string) string {
	return prefix + "_" + suffix
}
