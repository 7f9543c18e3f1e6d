package store

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// --- joinStrings Tests ---

func TestJoinStrings_Empty(t *testing.T) {
	result := joinStrings([]string{}, ", ")
	if result != "" {
		t.Errorf("expected empty string for empty slice, got %q", result)
	}
}

func TestJoinStrings_Single(t *testing.T) {
	result := joinStrings([]string{"one"}, ", ")
	if result != "one" {
		t.Errorf("expected 'one', got %q", result)
	}
}

func TestJoinStrings_Multiple(t *testing.T) {
	result := joinStrings([]string{"a", "b", "c"}, ", ")
	if result != "a, b, c" {
		t.Errorf("expected 'a, b, c', got %q", result)
	}
}

// --- key Tests ---

func TestKey(t *testing.T) {
	k := key("doc-1")
	attr, ok := k["id"].(*types.AttributeValueMemberS)
	if !ok {
		t.Fatal("expected string attribute for id")
	}
	if attr.Value != "doc-1" {
		t.Errorf("expected 'doc-1', got %q", attr.Value)
	}
}

// --- buildUpdateExpression Tests ---

func TestBuildUpdateExpression_SkipsManagedFields(t *testing.T) {
	data := Document{
		"id":         "should-be-skipped",
		"created_at": "2024-01-01T00:00:00Z",
		"updated_at": "2024-01-01T00:00:00Z",
		"name":       "Ledger1",
	}

	expr, names, values, err := buildUpdateExpression(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(expr, "SET ") {
		t.Errorf("expected SET expression, got %q", expr)
	}
	if !strings.Contains(expr, "#updated_at = :updated_at") {
		t.Errorf("expected updated_at clause in %q", expr)
	}

	// Only "name" plus the managed updated_at should survive.
	if len(names) != 2 {
		t.Errorf("expected 2 expression names, got %d: %v", len(names), names)
	}
	if names["#attr0"] != "name" {
		t.Errorf("expected #attr0 to map to 'name', got %q", names["#attr0"])
	}
	if _, ok := values[":updated_at"]; !ok {
		t.Error("expected :updated_at value")
	}
}

func TestBuildUpdateExpression_EmptyBody(t *testing.T) {
	expr, names, values, err := buildUpdateExpression(Document{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expr != "SET #updated_at = :updated_at" {
		t.Errorf("expected bare updated_at expression, got %q", expr)
	}
	if len(names) != 1 || len(values) != 1 {
		t.Errorf("expected only updated_at placeholders, got %v / %v", names, values)
	}
}

func TestBuildUpdateExpression_MarshalsValues(t *testing.T) {
	data := Document{
		"amount":   float64(100),
		"category": "supplies",
	}

	expr, names, values, err := buildUpdateExpression(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 2; i++ {
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		if _, ok := names[nameKey]; !ok {
			t.Errorf("missing expression name %s", nameKey)
		}
		if _, ok := values[valueKey]; !ok {
			t.Errorf("missing expression value %s", valueKey)
		}
		if !strings.Contains(expr, nameKey+" = "+valueKey) {
			t.Errorf("expected clause for %s in %q", nameKey, expr)
		}
	}
}

// --- isConditionalCheckFailed Tests ---

func TestIsConditionalCheckFailed(t *testing.T) {
	condErr := &types.ConditionalCheckFailedException{}
	if !isConditionalCheckFailed(condErr) {
		t.Error("expected true for ConditionalCheckFailedException")
	}
	if !isConditionalCheckFailed(fmt.Errorf("wrapped: %w", condErr)) {
		t.Error("expected true for wrapped ConditionalCheckFailedException")
	}
	if isConditionalCheckFailed(errors.New("other")) {
		t.Error("expected false for unrelated error")
	}
	if isConditionalCheckFailed(nil) {
		t.Error("expected false for nil")
	}
}

// --- unmarshalDocument Tests ---

func TestUnmarshalDocument(t *testing.T) {
	raw := map[string]types.AttributeValue{
		"id":         &types.AttributeValueMemberS{Value: "doc-1"},
		"name":       &types.AttributeValueMemberS{Value: "Acme"},
		"businessId": &types.AttributeValueMemberS{Value: "biz-1"},
		"amount":     &types.AttributeValueMemberN{Value: "100"},
	}

	doc, err := unmarshalDocument(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.ID() != "doc-1" {
		t.Errorf("expected id 'doc-1', got %q", doc.ID())
	}
	if doc.StringField("name") != "Acme" {
		t.Errorf("expected name 'Acme', got %q", doc.StringField("name"))
	}
	if !doc.Has("amount") {
		t.Error("expected amount attribute")
	}
}
