package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

// encodeJSON writes v the way documents are written, without HTML escaping.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func TestSecretString_Marshal(t *testing.T) {
	tests := []struct {
		name     string
		input    SecretString
		wantJSON string
		wantYAML string
	}{
		{"empty", "", "null", "null\n"},
		{"short", "x", `"` + SecretStringValue + `"`, SecretStringValue + "\n"},
		{"api key", "sk-proj-0123456789abcdef", `"` + SecretStringValue + `"`, SecretStringValue + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeJSON(tt.input)
			if err != nil {
				t.Fatalf("encodeJSON() error = %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("encodeJSON() = %s, want %s", got, tt.wantJSON)
			}
			// default encoder escapes angle brackets
			got, err = json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if strings.Contains(string(got), "sk-") || strings.Contains(string(got), "0123456789") {
				t.Errorf("json.Marshal() leaked value: %s", got)
			}
			got, err = yaml.Marshal(tt.input)
			if err != nil {
				t.Fatalf("yaml.Marshal() error = %v", err)
			}
			if string(got) != tt.wantYAML {
				t.Errorf("yaml.Marshal() = %q, want %q", got, tt.wantYAML)
			}
		})
	}
}

func TestSecretString_NoLeakage(t *testing.T) {
	cfg := TranslatorConfig{Engine: TranslatorEngineOpenai, Model: "m", APIKey: "sk-super-secret"}

	outputs := map[string]string{"fmt": fmt.Sprintf("%v %s", cfg.APIKey, cfg.APIKey)}
	if data, err := encodeJSON(cfg); err == nil {
		outputs["json"] = string(data)
	} else {
		t.Fatalf("encodeJSON() error = %v", err)
	}
	if data, err := json.Marshal(cfg); err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	} else if !strings.Contains(string(data), `\u003csecret\u003e`) {
		t.Errorf("json.Marshal() = %s, want escaped masked value", data)
	}
	if data, err := yaml.Marshal(cfg); err == nil {
		outputs["yaml"] = string(data)
	} else {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	for name, out := range outputs {
		if strings.Contains(out, "super-secret") {
			t.Errorf("secret leaked through %s: %s", name, out)
		}
		if !strings.Contains(out, SecretStringValue) {
			t.Errorf("%s output does not show masked value: %s", name, out)
		}
	}
	if cfg.APIKey.Reveal() != "sk-super-secret" {
		t.Errorf("Reveal() = %q", cfg.APIKey.Reveal())
	}
}
