package common

import (
	"os"
	"path/filepath"
	"testing"

	"reward-wallet-go/internal/models"

	"github.com/shopspring/decimal"
)

func writeTasksFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write tasks file: %v", err)
	}
	return path
}

func TestLoadRewardSchedule(t *testing.T) {
	path := writeTasksFile(t, `tasks:
  - kind: captcha
    reward: "10"
  - kind: survey
    reward: "5"
  - kind: game
    variable: true
`)

	schedule, err := LoadRewardSchedule(path)
	if err != nil {
		t.Fatalf("LoadRewardSchedule failed: %v", err)
	}

	reward, err := schedule.RewardFor(models.TaskCaptcha)
	if err != nil {
		t.Fatalf("RewardFor(captcha) failed: %v", err)
	}
	if !reward.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected captcha reward 10, got %s", reward.String())
	}

	reward, err = schedule.RewardFor(models.TaskSurvey)
	if err != nil {
		t.Fatalf("RewardFor(survey) failed: %v", err)
	}
	if !reward.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected survey reward 5, got %s", reward.String())
	}

	if !schedule.IsVariable(models.TaskGame) {
		t.Error("expected game to be variable-reward")
	}
	if _, err := schedule.RewardFor(models.TaskGame); err == nil {
		t.Error("expected error asking fixed reward for variable kind")
	}
	if _, err := schedule.RewardFor(models.TaskKind("lottery")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLoadRewardScheduleValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing kind", "tasks:\n  - reward: \"10\"\n"},
		{"bad reward", "tasks:\n  - kind: captcha\n    reward: \"ten\"\n"},
		{"non-positive reward", "tasks:\n  - kind: captcha\n    reward: \"0\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTasksFile(t, tc.content)
			if _, err := LoadRewardSchedule(path); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}
