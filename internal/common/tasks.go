package common

import (
	"fmt"
	"os"
	"path/filepath"

	"reward-wallet-go/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type TaskConfig struct {
	Kind     string `yaml:"kind"`
	Reward   string `yaml:"reward"`
	Variable bool   `yaml:"variable"`
}

type TasksConfig struct {
	Tasks []TaskConfig `yaml:"tasks"`
}

// RewardSchedule maps each task kind to its fixed reward amount.
// Variable-reward kinds (the game) carry no fixed amount; their payout
// is computed from the stake at play time.
type RewardSchedule struct {
	fixed    map[models.TaskKind]decimal.Decimal
	variable map[models.TaskKind]bool
}

func LoadRewardSchedule(tasksFile string) (*RewardSchedule, error) {
	var tasksPath string
	if filepath.IsAbs(tasksFile) {
		tasksPath = tasksFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		tasksPath = filepath.Join(wd, tasksFile)
	}

	data, err := os.ReadFile(tasksPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", tasksFile, err)
	}

	var config TasksConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", tasksFile, err)
	}

	schedule := &RewardSchedule{
		fixed:    make(map[models.TaskKind]decimal.Decimal),
		variable: make(map[models.TaskKind]bool),
	}
	for i, task := range config.Tasks {
		if task.Kind == "" {
			return nil, fmt.Errorf("task at index %d missing kind", i)
		}
		kind := models.TaskKind(task.Kind)
		if task.Variable {
			schedule.variable[kind] = true
			continue
		}
		reward, err := decimal.NewFromString(task.Reward)
		if err != nil {
			return nil, fmt.Errorf("task %s has invalid reward %q: %w", task.Kind, task.Reward, err)
		}
		if reward.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("task %s reward must be positive, got %s", task.Kind, task.Reward)
		}
		schedule.fixed[kind] = reward
	}

	return schedule, nil
}

// RewardFor returns the fixed reward for a task kind, or an error if the
// kind is unknown or rewards variably.
func (rs *RewardSchedule) RewardFor(kind models.TaskKind) (decimal.Decimal, error) {
	if rs.variable[kind] {
		return decimal.Zero, fmt.Errorf("task kind %s has a variable reward", kind)
	}
	reward, ok := rs.fixed[kind]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown task kind %s", kind)
	}
	return reward, nil
}

// IsVariable reports whether the task kind's reward depends on the stake.
func (rs *RewardSchedule) IsVariable(kind models.TaskKind) bool {
	return rs.variable[kind]
}

// Kinds returns every configured task kind.
func (rs *RewardSchedule) Kinds() []models.TaskKind {
	kinds := make([]models.TaskKind, 0, len(rs.fixed)+len(rs.variable))
	for kind := range rs.fixed {
		kinds = append(kinds, kind)
	}
	for kind := range rs.variable {
		kinds = append(kinds, kind)
	}
	return kinds
}

// NewRewardSchedule builds a schedule directly, bypassing the YAML file.
// Used by tests and by callers that embed the defaults.
func NewRewardSchedule(fixed map[models.TaskKind]decimal.Decimal, variable ...models.TaskKind) *RewardSchedule {
	schedule := &RewardSchedule{
		fixed:    make(map[models.TaskKind]decimal.Decimal, len(fixed)),
		variable: make(map[models.TaskKind]bool, len(variable)),
	}
	for kind, reward := range fixed {
		schedule.fixed[kind] = reward
	}
	for _, kind := range variable {
		schedule.variable[kind] = true
	}
	return schedule
}
