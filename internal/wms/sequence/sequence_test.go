package sequence

import (
	"strings"
	"testing"
)

func TestNextFromExisting(t *testing.T) {
	got, err := Next("SRNU", 9, "SRNU000000005")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if got != "SRNU000000006" {
		t.Errorf("expected SRNU000000006, got %s", got)
	}
}

func TestNextFirstCode(t *testing.T) {
	got, err := Next("PALT", 9, "")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if got != "PALT000000001" {
		t.Errorf("expected PALT000000001, got %s", got)
	}
}

// 定宽零填充保证字典序与数值序一致，生成的单号必须大于当前最大值
func TestNextMonotonic(t *testing.T) {
	cases := []struct {
		prefix string
		width  int
		latest string
	}{
		{"SRNU", 9, "SRNU000000001"},
		{"SRNU", 9, "SRNU000000999"},
		{"PALT", 9, "PALT000099999"},
		{"PALT", 9, "PALT999999998"},
		{"TRNU", 6, "TRNU000042"},
	}
	for _, tc := range cases {
		got, err := Next(tc.prefix, tc.width, tc.latest)
		if err != nil {
			t.Fatalf("Next(%s, %d, %s) failed: %v", tc.prefix, tc.width, tc.latest, err)
		}
		if !(got > tc.latest) {
			t.Errorf("Next(%s) = %s, not lexicographically greater", tc.latest, got)
		}
		if len(got) != len(tc.prefix)+tc.width {
			t.Errorf("Next(%s) = %s, wrong width", tc.latest, got)
		}
	}
}

func TestNextRejectsNonNumericSuffix(t *testing.T) {
	if _, err := Next("SRNU", 9, "SRNU00000ABC"); err == nil {
		t.Error("expected error for non-numeric suffix, got nil")
	}
	if _, err := Next("SRNU", 9, "XXXX000000005"); err == nil {
		t.Error("expected error for mismatched prefix, got nil")
	}
}

func TestNextRejectsBadArgs(t *testing.T) {
	if _, err := Next("", 9, ""); err == nil {
		t.Error("expected error for empty prefix, got nil")
	}
	if _, err := Next("SRNU", 0, ""); err == nil {
		t.Error("expected error for zero width, got nil")
	}
}

// 记录已知空档：读最大值在插入事务之外，两个并发请求读到同一最大值
// 会得到完全相同的下一号。开启 sequence.hardened 后由 Redis 计数器保证唯一。
func TestNextSameLatestSameCode(t *testing.T) {
	a, err := Next("PALT", 9, "PALT000000005")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	b, err := Next("PALT", 9, "PALT000000005")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if a != b || a != "PALT000000006" {
		t.Errorf("expected both calls to produce PALT000000006, got %s / %s", a, b)
	}
}

func TestIsAuto(t *testing.T) {
	if !IsAuto("NA") {
		t.Error("NA should request auto generation")
	}
	if IsAuto("SRNU000000001") || IsAuto("") {
		t.Error("explicit or empty codes are not the auto sentinel")
	}
	if IsAuto(strings.ToLower("NA")) {
		t.Error("sentinel is case sensitive")
	}
}
