package notify

import "testing"

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 || UrgencyNormal != 1 || UrgencyCritical != 2 {
		t.Errorf("urgency values = %d/%d/%d, want 0/1/2", UrgencyLow, UrgencyNormal, UrgencyCritical)
	}
}

func TestGameFinished(t *testing.T) {
	tests := []struct {
		name     string
		families []string
		items    int
		wantBody string
	}{
		{"one item", nil, 1, "1 phrase écoutée"},
		{"several families", []string{"Fruits", "Hygiène"}, 12, "12 phrases écoutées\nFruits, Hygiène"},
		{"nothing played", nil, 0, "0 phrases écoutées"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := GameFinished(tt.families, tt.items)
			if n.Title != "Jeu terminé !" {
				t.Errorf("Title = %q", n.Title)
			}
			if n.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", n.Body, tt.wantBody)
			}
		})
	}
}

func TestDisabled(t *testing.T) {
	id, err := Disabled().Notify(GameFinished(nil, 3))
	if id != 0 || err != nil {
		t.Errorf("Disabled().Notify() = %d, %v; want 0, nil", id, err)
	}
}
