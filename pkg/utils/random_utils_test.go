package utils

import (
	"regexp"
	"testing"
)

func TestGenerateTrackingCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^POA[A-Z0-9]{8}$`)
	for i := 0; i < 100; i++ {
		code := GenerateTrackingCode()
		if !pattern.MatchString(code) {
			t.Fatalf("tracking code %q does not match expected format", code)
		}
	}
}

func TestGenerateTrackingCodeUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := GenerateTrackingCode()
		if seen[code] {
			t.Fatalf("duplicate tracking code %q after %d draws", code, i)
		}
		seen[code] = true
	}
}

func TestGenerateTrackingCodeUniformity(t *testing.T) {
	const draws = 20000
	counts := make(map[byte]int)
	for i := 0; i < draws; i++ {
		code := GenerateTrackingCode()
		for _, b := range []byte(code[3:]) {
			counts[b]++
		}
	}

	// 36个字符，每个的期望出现次数为 draws*8/36 ≈ 4444，
	// 偏差超过10%说明采样不均匀
	expected := float64(draws*8) / 36
	for ch, n := range counts {
		if float64(n) < expected*0.9 || float64(n) > expected*1.1 {
			t.Errorf("character %q drawn %d times, expected about %.0f", ch, n, expected)
		}
	}
	if len(counts) != 36 {
		t.Errorf("only %d distinct characters drawn, want 36", len(counts))
	}
}

func TestRandomSuffixRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := RandomSuffix()
		if n < 0 || n >= 1e9 {
			t.Fatalf("suffix %d out of range", n)
		}
	}
}
