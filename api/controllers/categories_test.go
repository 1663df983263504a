package controllers

import (
	"net/http"
	"testing"
)

func TestCategoryLifecycle(t *testing.T) {
	session := newTestSession(t)
	router := testRouter(session)

	resp := doJSON(t, router, http.MethodGet, "/categories", "")
	var names []string
	decodeData(t, resp, &names)
	if len(names) != 4 || names[0] != "food" {
		t.Fatalf("unexpected builtins %v", names)
	}

	resp = doJSON(t, router, http.MethodPost, "/categories", `{"name":"spices"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodPost, "/categories", `{"name":"spices"}`)
	code, _ := decodeError(t, resp)
	if code != "DUPLICATE_CATEGORY" {
		t.Fatalf("expected DUPLICATE_CATEGORY got %s", code)
	}

	resp = doJSON(t, router, http.MethodDelete, "/categories/spices", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/categories", "")
	decodeData(t, resp, &names)
	if len(names) != 4 {
		t.Fatalf("custom category survived delete: %v", names)
	}
}

func TestCategoryDeleteGuards(t *testing.T) {
	session := newTestSession(t)
	router := testRouter(session)

	resp := doJSON(t, router, http.MethodDelete, "/categories/food", "")
	code, _ := decodeError(t, resp)
	if code != "VALIDATION_ERROR" {
		t.Fatalf("builtin delete: expected VALIDATION_ERROR got %s", code)
	}

	doJSON(t, router, http.MethodPost, "/categories", `{"name":"spices"}`)
	addProduct(t, session, "Sumac", "", "spices", "750", 20)

	resp = doJSON(t, router, http.MethodDelete, "/categories/spices", "")
	code, _ = decodeError(t, resp)
	if code != "CATEGORY_IN_USE" {
		t.Fatalf("referenced delete: expected CATEGORY_IN_USE got %s", code)
	}
}
