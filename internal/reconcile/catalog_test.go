package reconcile

import "testing"

func TestDefaultCatalogValid(t *testing.T) {
	if err := DefaultCatalog().Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}

func TestCatalogValidate(t *testing.T) {
	cases := []struct {
		name    string
		catalog Catalog
		wantErr bool
	}{
		{
			name:    "empty category",
			catalog: Catalog{{Category: " ", SectionKey: "x", Keywords: []string{"a"}}},
			wantErr: true,
		},
		{
			name:    "empty section key",
			catalog: Catalog{{Category: "X", SectionKey: "", Keywords: []string{"a"}}},
			wantErr: true,
		},
		{
			name: "duplicate category",
			catalog: Catalog{
				{Category: "X", SectionKey: "x", Keywords: []string{"a"}},
				{Category: "X", SectionKey: "y", Keywords: []string{"b"}},
			},
			wantErr: true,
		},
		{
			name:    "uppercase keyword",
			catalog: Catalog{{Category: "X", SectionKey: "x", Keywords: []string{"T4"}}},
			wantErr: true,
		},
		{
			name:    "empty keyword",
			catalog: Catalog{{Category: "X", SectionKey: "x", Keywords: []string{""}}},
			wantErr: true,
		},
		{
			name:    "ok",
			catalog: Catalog{{Category: "X", SectionKey: "x", Keywords: []string{"t4", "pay"}}},
			wantErr: false,
		},
	}
	for _, tc := range cases {
		err := tc.catalog.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: err = %v, wantErr = %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestRuleFor(t *testing.T) {
	c := DefaultCatalog()
	rule, ok := c.RuleFor("Medical Expenses")
	if !ok {
		t.Fatal("expected Medical Expenses rule")
	}
	if rule.SectionKey != "medical" {
		t.Fatalf("section key = %q, want medical", rule.SectionKey)
	}
	if _, ok := c.RuleFor("Crypto Mining"); ok {
		t.Fatal("expected unknown category to be absent")
	}
}
