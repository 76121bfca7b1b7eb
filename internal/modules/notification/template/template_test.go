package template

import (
	"reflect"
	"testing"
)

func TestRenderEmphasisBoundaries(t *testing.T) {
	payload := map[string]string{"user": "Alice", "action": "좋아요"}

	got := Render("!{user}님이 {action}했습니다", nil, payload)

	want := []Part{
		{Text: "Alice", Emphasis: true},
		{Text: "님이", Emphasis: false},
		{Text: "좋아요했습니다", Emphasis: false},
	}
	if !reflect.DeepEqual(got.Parts, want) {
		t.Fatalf("parts = %#v, want %#v", got.Parts, want)
	}
	if got.Message != "Alice님이 좋아요했습니다" {
		t.Fatalf("message = %q", got.Message)
	}
	if got.URL != nil {
		t.Fatalf("expected nil url, got %q", *got.URL)
	}
}

func TestRenderLiteralOnly(t *testing.T) {
	got := Render("환영합니다! 다시 찾아주셔서 감사합니다", nil, map[string]string{})

	want := []Part{
		{Text: "환영합니다!", Emphasis: false},
		{Text: "다시", Emphasis: false},
		{Text: "찾아주셔서", Emphasis: false},
		{Text: "감사합니다", Emphasis: false},
	}
	if !reflect.DeepEqual(got.Parts, want) {
		t.Fatalf("parts = %#v, want %#v", got.Parts, want)
	}
	if got.Message != "환영합니다! 다시 찾아주셔서 감사합니다" {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestRenderMissingKeyDegradesGracefully(t *testing.T) {
	got := Render("!{user}님이 댓글을 남겼습니다", nil, map[string]string{})

	// The missing substitution renders as empty, never panics or errors.
	want := []Part{
		{Text: "님이", Emphasis: false},
		{Text: "댓글을", Emphasis: false},
		{Text: "남겼습니다", Emphasis: false},
	}
	if !reflect.DeepEqual(got.Parts, want) {
		t.Fatalf("parts = %#v, want %#v", got.Parts, want)
	}
}

func TestRenderURLTemplate(t *testing.T) {
	url := "/movies/{movieId}"
	got := Render("!{username}님의 알림", &url, map[string]string{
		"username": "Bob",
		"movieId":  "42",
	})

	if got.URL == nil || *got.URL != "/movies/42" {
		t.Fatalf("url = %v, want /movies/42", got.URL)
	}
}

func TestRenderURLMissingKey(t *testing.T) {
	url := "/movies/{movieId}"
	got := Render("알림", &url, map[string]string{})
	if got.URL == nil || *got.URL != "/movies/" {
		t.Fatalf("url = %v, want /movies/", got.URL)
	}
}

func TestRenderIconOverride(t *testing.T) {
	got := Render("알림", nil, map[string]string{})
	if got.Icon != DefaultIcon {
		t.Fatalf("icon = %q, want default", got.Icon)
	}

	got = Render("알림", nil, map[string]string{"icon": "https://cdn.example.com/a.webp"})
	if got.Icon != "https://cdn.example.com/a.webp" {
		t.Fatalf("icon = %q, want override", got.Icon)
	}
}

func TestRenderUnbalancedBraceIsLiteral(t *testing.T) {
	got := Render("불완전한 {placeholder 토큰", nil, map[string]string{"placeholder": "x"})

	want := []Part{
		{Text: "불완전한", Emphasis: false},
		{Text: "{placeholder", Emphasis: false},
		{Text: "토큰", Emphasis: false},
	}
	if !reflect.DeepEqual(got.Parts, want) {
		t.Fatalf("parts = %#v, want %#v", got.Parts, want)
	}
}

func TestRenderAdjacentPlaceholders(t *testing.T) {
	got := Render("{a}{b}와 !{c}{d}", nil, map[string]string{
		"a": "하나", "b": "둘", "c": "셋", "d": "넷",
	})

	want := []Part{
		{Text: "하나둘와", Emphasis: false},
		{Text: "셋", Emphasis: true},
		{Text: "넷", Emphasis: false},
	}
	if !reflect.DeepEqual(got.Parts, want) {
		t.Fatalf("parts = %#v, want %#v", got.Parts, want)
	}
}

func TestRenderBangWithoutBraceIsLiteral(t *testing.T) {
	got := Render("안녕! {name}", nil, map[string]string{"name": "Kim"})

	want := []Part{
		{Text: "안녕!", Emphasis: false},
		{Text: "Kim", Emphasis: false},
	}
	if !reflect.DeepEqual(got.Parts, want) {
		t.Fatalf("parts = %#v, want %#v", got.Parts, want)
	}
}
