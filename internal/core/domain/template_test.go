package domain

import (
	"errors"
	"testing"
)

func TestTemplateQuery_Validate(t *testing.T) {
	valid := []string{"", TemplateDatasetAny, TemplateDatasetNonEmpty, TemplateDatasetEmpty}
	for _, ds := range valid {
		if err := (TemplateQuery{Dataset: ds}).Validate(); err != nil {
			t.Errorf("dataset %q: unexpected error %v", ds, err)
		}
	}

	err := TemplateQuery{Dataset: "everything"}.Validate()
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}
