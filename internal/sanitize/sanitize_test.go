package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "a perfectly ordinary post", "a perfectly ordinary post"},
		{"empty", "", ""},
		{"script block removed", `before<script>alert(1)</script>after`, "beforeafter"},
		{"script with attributes", `x<script type="text/javascript">evil()</script>y`, "xy"},
		{"script case insensitive", `x<SCRIPT>evil()</SCRIPT>y`, "xy"},
		{"double quoted event handler", `<img src="a.png" onerror="evil()">`, `<img src="a.png">`},
		{"single quoted event handler", `<div onclick='evil()'>hi</div>`, `<div>hi</div>`},
		{"javascript protocol", `<a href="javascript:evil()">link</a>`, `<a href="evil()">link</a>`},
		{"safe markup kept", `<b>bold</b> and <i>italic</i>`, `<b>bold</b> and <i>italic</i>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.in))
		})
	}
}
