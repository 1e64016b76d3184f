package wikeddiff

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := defaultConfig().validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsNegativeFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() *Config
	}{
		{"recursionMax", func() *Config { c := defaultConfig(); c.recursionMax = -1; return c }},
		{"unlinkMax", func() *Config { c := defaultConfig(); c.unlinkMax = -1; return c }},
		{"blockMinLength", func() *Config { c := defaultConfig(); c.blockMinLength = -1; return c }},
		{"clipCharsLeft", func() *Config { c := defaultConfig(); c.clipCharsLeft = -1; return c }},
		{"clipSkipLines", func() *Config { c := defaultConfig(); c.clipSkipLines = -1; return c }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg().validate()
			if err == nil {
				t.Fatalf("expected an error for negative %s", tc.name)
			}
			if _, ok := err.(*InvalidConfigError); !ok {
				t.Fatalf("expected *InvalidConfigError, got %T", err)
			}
		})
	}
}

func TestWithOptionsApplyToConfig(t *testing.T) {
	c := defaultConfig()
	WithFullDiff(true)(c)
	WithBlockMoves(false)(c)
	WithCharDiff(false)(c)
	WithUnlinkBlocks(false, 1, 2)(c)
	WithClipSkip(7, 1)(c)

	if !c.fullDiff || c.showBlockMoves || c.charDiff {
		t.Errorf("boolean options did not apply: %+v", c)
	}
	if c.unlinkMax != 1 || c.blockMinLength != 2 {
		t.Errorf("WithUnlinkBlocks did not apply its numeric fields: %+v", c)
	}
	if c.clipSkipChars != 7 || c.clipSkipLines != 1 {
		t.Errorf("WithClipSkip did not apply: %+v", c)
	}
}
