package engine

import (
	"reflect"
	"testing"
)

func TestAnalyzeFiveIndicatorsIsComplex(t *testing.T) {
	profile := Analyze("An enterprise real-time AI platform with payment processing built on microservices")
	if profile.Complexity != ComplexityComplex {
		t.Fatalf("expected complex, got %s", profile.Complexity)
	}
	if profile.ScalingRequirements != TierHigh {
		t.Fatalf("expected high scaling, got %s", profile.ScalingRequirements)
	}
	if !profile.RealTimeNeeds || !profile.AIMLNeeds {
		t.Fatalf("expected real-time and ai/ml needs, got %+v", profile)
	}
	if !profile.HasFeature(FeaturePayments) {
		t.Fatalf("expected payments feature, got %v", profile.Features)
	}
}

func TestAnalyzeEmptyIdeaReturnsDefault(t *testing.T) {
	for _, idea := range []string{"", "   "} {
		got := Analyze(idea)
		if !reflect.DeepEqual(got, DefaultProjectProfile()) {
			t.Fatalf("expected default profile for %q, got %+v", idea, got)
		}
	}
}

func TestAnalyzeProjectTypePriority(t *testing.T) {
	cases := []struct {
		idea string
		want string
	}{
		{idea: "a mobile game", want: ProjectMobileApp},
		{idea: "an admin dashboard for my app", want: ProjectMobileApp},
		{idea: "a REST backend for billing", want: ProjectAPI},
		{idea: "public api with admin dashboard", want: ProjectAPI},
		{idea: "admin dashboard for warehouse stock", want: ProjectDashboard},
		{idea: "a simple blog", want: ProjectWebApp},
		{idea: "a happy little blog", want: ProjectWebApp},
		{idea: "capital markets dashboard", want: ProjectDashboard},
		{idea: "a calorie tracking app", want: ProjectMobileApp},
	}
	for _, tc := range cases {
		t.Run(tc.idea, func(t *testing.T) {
			if got := Analyze(tc.idea).ProjectType; got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAnalyzeShortKeywordsMatchWholeWords(t *testing.T) {
	profile := Analyze("send a weekly email digest to maintainers")
	if profile.AIMLNeeds {
		t.Fatalf("did not expect ai/ml needs from %q", "email")
	}
	if n := CountComplexityIndicators("email html"); n != 0 {
		t.Fatalf("expected 0 indicators, got %d", n)
	}
	if n := CountComplexityIndicators("AI/ML analytics"); n != 3 {
		t.Fatalf("expected 3 indicators, got %d", n)
	}
}

func TestAnalyzeComplexityThresholds(t *testing.T) {
	cases := []struct {
		idea string
		want string
	}{
		{idea: "a recipe site", want: ComplexitySimple},
		{idea: "a recipe site with analytics", want: ComplexitySimple},
		{idea: "a recipe site with analytics and payment", want: ComplexityMedium},
		{idea: "a distributed recipe site with analytics and payment", want: ComplexityMedium},
		{idea: "a distributed multi-tenant recipe site with analytics and payment", want: ComplexityComplex},
	}
	for _, tc := range cases {
		if got := Analyze(tc.idea).Complexity; got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.idea, tc.want, got)
		}
	}
}

func TestAnalyzeDatabaseNeeds(t *testing.T) {
	cases := []struct {
		idea string
		want string
	}{
		{idea: "semantic search over documents using ai", want: DatabaseVector},
		{idea: "an ai writing assistant", want: DatabaseNoSQL},
		{idea: "a todo list with login", want: DatabaseRelational},
	}
	for _, tc := range cases {
		if got := Analyze(tc.idea).DatabaseNeeds; got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.idea, tc.want, got)
		}
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	idea := "Realtime chat with login, stripe checkout and full-text search"
	first := Analyze(idea)
	second := Analyze(idea)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical profiles")
	}
	want := []string{FeatureAuthentication, FeatureRealTime, FeaturePayments, FeatureSearch}
	if !reflect.DeepEqual(first.Features, want) {
		t.Fatalf("expected features %v, got %v", want, first.Features)
	}
}
