package common

import "testing"

func TestShapeAABB(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  AABB
	}{
		{"box", BoxShape(NewV2(1, 2), NewV2(5, 8)), NewAABB(1, 2, 4, 6)},
		{"inverted_box", BoxShape(NewV2(5, 8), NewV2(1, 2)), NewAABB(1, 2, 4, 6)},
		{"polygon", PolygonShape([]V2{NewV2(0, 0), NewV2(4, -2), NewV2(2, 3)}), AABB{L: 0, B: -2, R: 4, T: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.AABB(); got != tt.want {
				t.Fatalf("AABB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShapeTranslated(t *testing.T) {
	poly := PolygonShape([]V2{NewV2(0, 0), NewV2(4, 0), NewV2(2, 3)})
	moved := poly.Translated(NewV2(-10, 5))
	if moved.Vertices[1] != NewV2(-6, 5) {
		t.Fatalf("translated vertex = %v", moved.Vertices[1])
	}
	if poly.Vertices[1] != NewV2(4, 0) {
		t.Fatalf("Translated mutated the receiver")
	}
}
