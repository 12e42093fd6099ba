// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/quickly-form/models"
	"github.com/danielhkuo/quickly-form/testutil"
)

func assign(t *testing.T, h *AssignmentHandler, formKey string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeRequest("POST", "/forms/"+formKey+"/assignments", models.AssignRequest{UserID: userID}, nil)
	req = asUser(withPath(req, "formKey", formKey), adminID, models.RoleAdmin)
	w := httptest.NewRecorder()
	h.Assign(w, req)
	return w
}

func TestAssignFlow(t *testing.T) {
	db, forms, _ := setupHandlers(t)
	h := NewAssignmentHandler(db, forms)

	w := assign(t, h, "7", learnerID)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var a models.Assignment
	testutil.AssertJSON(t, w, &a)
	if a.SequenceNo != 1 || a.FormID != "form-7" || a.UserID != learnerID {
		t.Errorf("unexpected assignment %+v", a)
	}
	if a.AssignedBy == nil || *a.AssignedBy != adminID {
		t.Errorf("expected assigned_by %d, got %v", adminID, a.AssignedBy)
	}

	// Draft forms can be assigned too.
	testutil.AssertStatus(t, assign(t, h, "8", learnerID), http.StatusCreated)

	w = assign(t, h, "7", learnerID)
	testutil.AssertStatus(t, w, http.StatusConflict)
	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Code != "AlreadyAssigned" {
		t.Errorf("expected AlreadyAssigned, got %q", errResp.Code)
	}

	w = assign(t, h, "7", otherID)
	testutil.AssertStatus(t, w, http.StatusCreated)
	testutil.AssertJSON(t, w, &a)
	if a.SequenceNo != 2 {
		t.Errorf("expected sequence 2, got %d", a.SequenceNo)
	}

	req := asUser(withPath(testutil.MakeRequest("GET", "/forms/7/assignments", nil, nil), "formKey", "7"), adminID, models.RoleAdmin)
	w = httptest.NewRecorder()
	h.ListAssignees(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	var list []models.Assignment
	testutil.AssertJSON(t, w, &list)
	if len(list) != 2 || list[0].UserID != learnerID || list[1].UserID != otherID {
		t.Errorf("unexpected assignees %+v", list)
	}

	req = asUser(testutil.MakeRequest("GET", "/assignments/mine", nil, nil), learnerID, models.RoleLearner)
	w = httptest.NewRecorder()
	h.ListMine(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &list)
	if len(list) != 2 {
		t.Errorf("expected learner on 2 forms, got %d", len(list))
	}

	unassign := func(userID int64) models.UnassignResponse {
		id := strconv.FormatInt(userID, 10)
		req := testutil.MakeRequest("DELETE", "/forms/7/assignments/"+id, nil, nil)
		req = asUser(withPath(req, "formKey", "7", "userId", id), adminID, models.RoleAdmin)
		w := httptest.NewRecorder()
		h.Unassign(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.UnassignResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}
	if !unassign(learnerID).Removed {
		t.Error("expected first unassign to remove")
	}
	if unassign(learnerID).Removed {
		t.Error("expected second unassign to be a no-op")
	}
}

func TestAssignErrors(t *testing.T) {
	db, forms, _ := setupHandlers(t)
	h := NewAssignmentHandler(db, forms)

	testutil.AssertStatus(t, assign(t, h, "99", learnerID), http.StatusNotFound)
	testutil.AssertStatus(t, assign(t, h, "abc", learnerID), http.StatusNotFound)
	testutil.AssertStatus(t, assign(t, h, "7", 0), http.StatusBadRequest)

	req := testutil.MakeRequest("DELETE", "/forms/7/assignments/x", nil, nil)
	req = asUser(withPath(req, "formKey", "7", "userId", "x"), adminID, models.RoleAdmin)
	w := httptest.NewRecorder()
	h.Unassign(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
