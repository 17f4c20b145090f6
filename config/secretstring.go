package config

// SecretStringValue must be exported - used in tests.
const SecretStringValue = "<secret>"

// SecretString holds credentials (translator API key). Value never shows up
// in logs, dumped configuration or debug report, use Reveal to get it.
type SecretString string

// Reveal returns actual value.
func (s SecretString) Reveal() string {
	return string(s)
}

// String makes value safe for zap.Stringer and fmt.
func (s SecretString) String() string {
	if len(s) == 0 {
		return ""
	}
	return SecretStringValue
}

// MarshalJSON marshals SecretString to JSON making sure that actual value is not visible.
func (s SecretString) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte("\"" + SecretStringValue + "\""), nil
}

// MarshalYAML marshals SecretString to YAML making sure that actual value is not visible.
func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretStringValue, nil
}
