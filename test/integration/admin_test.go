//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/lettertrail/platform/test/integration/testutil"
)

func TestAdminLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedAdmin("ops@example.com", "hunter2hunter2")

	t.Run("wrong password rejected", func(t *testing.T) {
		resp := env.POST("/admin/login", map[string]string{
			"email": "ops@example.com", "password": "nope",
		}, "")
		testutil.AssertStatus(t, resp, http.StatusUnauthorized)
		resp.Body.Close()
	})

	t.Run("routes reject missing token", func(t *testing.T) {
		resp := env.GET("/admin/challenges")
		testutil.AssertStatus(t, resp, http.StatusUnauthorized)
		resp.Body.Close()
	})
}

func TestAdminChallengeCRUD(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("ops@example.com", "hunter2hunter2")

	create := map[string]interface{}{
		"title":         "First kiss spot",
		"password":      "kiss",
		"letter":        "l",
		"latitude":      52.3676,
		"longitude":     4.9041,
		"radius_meters": 100,
		"sort_order":    1,
	}

	var created struct {
		ID       uuid.UUID `json:"id"`
		Letter   string    `json:"letter"`
		Password string    `json:"password"`
		IsActive bool      `json:"is_active"`
	}

	t.Run("create uppercases the letter and defaults active", func(t *testing.T) {
		resp := env.POST("/admin/challenges", create, token)
		testutil.AssertStatus(t, resp, http.StatusCreated)
		testutil.DecodeJSON(t, resp, &created)

		if created.Letter != "L" {
			t.Errorf("expected letter L, got %q", created.Letter)
		}
		if created.Password != "kiss" {
			t.Errorf("admin view should include the password, got %q", created.Password)
		}
		if !created.IsActive {
			t.Error("expected challenge active by default")
		}
	})

	t.Run("update replaces fields", func(t *testing.T) {
		update := map[string]interface{}{
			"title":         "First kiss spot (moved)",
			"password":      "kiss",
			"letter":        "L",
			"latitude":      52.37,
			"longitude":     4.9,
			"radius_meters": 150,
			"sort_order":    1,
		}
		resp := env.AuthDo(http.MethodPut, "/admin/challenges/"+created.ID.String(), update, token)
		testutil.AssertStatus(t, resp, http.StatusOK)

		var updated struct {
			Title        string `json:"title"`
			RadiusMeters int    `json:"radius_meters"`
		}
		testutil.DecodeJSON(t, resp, &updated)
		if updated.RadiusMeters != 150 {
			t.Errorf("expected radius 150, got %d", updated.RadiusMeters)
		}
	})

	t.Run("toggle hides it from players", func(t *testing.T) {
		resp := env.AuthDo(http.MethodPatch, "/admin/challenges/"+created.ID.String()+"/toggle", nil, token)
		testutil.AssertStatus(t, resp, http.StatusOK)
		resp.Body.Close()

		playerResp := env.PlayerAction(map[string]interface{}{"action": "get-challenges"})
		var result struct {
			Challenges []interface{} `json:"challenges"`
		}
		testutil.DecodeJSON(t, playerResp, &result)
		if len(result.Challenges) != 0 {
			t.Errorf("expected no active challenges after toggle, got %d", len(result.Challenges))
		}
	})

	t.Run("invalid payload rejected", func(t *testing.T) {
		resp := env.POST("/admin/challenges", map[string]interface{}{
			"title": "no password", "letter": "A",
			"latitude": 0, "longitude": 0, "radius_meters": 10,
		}, token)
		testutil.AssertStatus(t, resp, http.StatusBadRequest)
		resp.Body.Close()
	})

	t.Run("delete removes it", func(t *testing.T) {
		resp := env.AuthDo(http.MethodDelete, "/admin/challenges/"+created.ID.String(), nil, token)
		testutil.AssertStatus(t, resp, http.StatusOK)
		resp.Body.Close()

		listResp := env.AuthGET("/admin/challenges", token)
		var rows []interface{}
		testutil.DecodeJSON(t, listResp, &rows)
		if len(rows) != 0 {
			t.Errorf("expected empty list after delete, got %d", len(rows))
		}
	})
}

func TestAdminPlayerManagement(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("ops@example.com", "hunter2hunter2")

	var created struct {
		ID   uuid.UUID `json:"id"`
		Code string    `json:"code"`
	}

	t.Run("create normalizes the code", func(t *testing.T) {
		resp := env.POST("/admin/players", map[string]string{
			"name": "Maartje", "code": " love2024 ",
		}, token)
		testutil.AssertStatus(t, resp, http.StatusCreated)
		testutil.DecodeJSON(t, resp, &created)
		if created.Code != "LOVE2024" {
			t.Errorf("expected normalized code LOVE2024, got %q", created.Code)
		}
	})

	t.Run("a second player gets its own id", func(t *testing.T) {
		resp := env.POST("/admin/players", map[string]string{
			"name": "Guest", "code": "SUNSET9",
		}, token)
		testutil.AssertStatus(t, resp, http.StatusCreated)

		var second struct {
			ID   uuid.UUID `json:"id"`
			Code string    `json:"code"`
		}
		testutil.DecodeJSON(t, resp, &second)
		if second.ID == uuid.Nil {
			t.Error("expected a generated id")
		}
		if second.ID == created.ID {
			t.Errorf("expected a distinct id, both players got %s", second.ID)
		}
	})

	t.Run("duplicate code is a conflict", func(t *testing.T) {
		resp := env.POST("/admin/players", map[string]string{
			"name": "Other", "code": "love2024",
		}, token)
		testutil.AssertStatus(t, resp, http.StatusConflict)
		resp.Body.Close()
	})

	t.Run("toggle deactivates the login", func(t *testing.T) {
		resp := env.AuthDo(http.MethodPatch, "/admin/players/"+created.ID.String()+"/toggle", nil, token)
		testutil.AssertStatus(t, resp, http.StatusOK)
		resp.Body.Close()

		loginResp := env.PlayerAction(map[string]interface{}{"action": "login", "code": "LOVE2024"})
		testutil.AssertStatus(t, loginResp, http.StatusUnauthorized)
		loginResp.Body.Close()
	})

	t.Run("delete cascades", func(t *testing.T) {
		resp := env.AuthDo(http.MethodDelete, "/admin/players/"+created.ID.String(), nil, token)
		testutil.AssertStatus(t, resp, http.StatusOK)
		resp.Body.Close()

		listResp := env.AuthGET("/admin/players", token)
		var rows []interface{}
		testutil.DecodeJSON(t, listResp, &rows)
		if len(rows) != 0 {
			t.Errorf("expected no players after delete, got %d", len(rows))
		}
	})
}

func TestAdminLocationFeed(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("ops@example.com", "hunter2hunter2")
	playerID := env.SeedPlayer("Maartje", "LOVE2024", true)

	for i := 0; i < 3; i++ {
		resp := env.PlayerAction(map[string]interface{}{
			"action":    "track-location",
			"player_id": playerID.String(),
			"latitude":  52.37,
			"longitude": 4.89,
		})
		testutil.AssertStatus(t, resp, http.StatusOK)
		resp.Body.Close()
	}

	t.Run("feed joins player names", func(t *testing.T) {
		resp := env.AuthGET("/admin/locations?limit=2", token)
		testutil.AssertStatus(t, resp, http.StatusOK)

		var rows []struct {
			PlayerID   uuid.UUID `json:"player_id"`
			PlayerName string    `json:"player_name"`
		}
		testutil.DecodeJSON(t, resp, &rows)
		if len(rows) != 2 {
			t.Fatalf("expected limit of 2 rows, got %d", len(rows))
		}
		if rows[0].PlayerName != "Maartje" {
			t.Errorf("expected joined player name, got %q", rows[0].PlayerName)
		}
	})

	t.Run("bad limit rejected", func(t *testing.T) {
		resp := env.AuthGET("/admin/locations?limit=-1", token)
		testutil.AssertStatus(t, resp, http.StatusBadRequest)
		resp.Body.Close()
	})
}
