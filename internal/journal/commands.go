package journal

import (
	"github.com/phrazzld/degen-journal/internal/achievement"
	"github.com/phrazzld/degen-journal/internal/events"
	"github.com/phrazzld/degen-journal/internal/skilltree"
)

// Command is a state change produced by an evaluator or a user command and
// applied by the journal's reducer.
type Command interface {
	apply(j *Journal, tx *txn)
}

// GrantXP adds XP to the ledger.
type GrantXP struct {
	Amount int
	Reason string
}

func (c GrantXP) apply(j *Journal, tx *txn) {
	if c.Amount <= 0 {
		return
	}
	// Amount is positive, AddXP cannot fail.
	_ = j.ledger.AddXP(c.Amount)
	tx.emit(events.TypeXPGranted, xpPayload{Amount: c.Amount, Reason: c.Reason, Total: j.ledger.XP()})
}

// UnlockAchievement records an achievement and grants its reward once.
type UnlockAchievement struct {
	ID     string
	Reward int
}

func (c UnlockAchievement) apply(j *Journal, tx *txn) {
	if !j.ledger.UnlockAchievement(c.ID, c.Reward) {
		return
	}
	tx.unlocked = append(tx.unlocked, c.ID)
	tx.emit(events.TypeAchievementUnlocked, achievementPayload{ID: c.ID, Reward: c.Reward, Total: j.ledger.XP()})
}

// settle reconciles the skill tree and applies achievement unlocks until a
// pass produces no new command. Each unlock can grant XP, which can make an
// XP achievement reachable on the next pass. Unlocks only ever add to a
// finite set, so the loop ends.
func (j *Journal) settle(tx *txn) {
	for {
		j.reconcileSkills(tx)

		cmds := j.evaluate()
		if len(cmds) == 0 {
			return
		}
		for _, c := range cmds {
			c.apply(j, tx)
		}
	}
}

func (j *Journal) reconcileSkills(tx *txn) {
	next := skilltree.Reconcile(j.skills, j.ledger.Snapshot().CompletedSkills)
	for _, id := range skilltree.Changed(j.skills, next) {
		node, _ := skilltree.Find(next, id)
		tx.skillsChanged = append(tx.skillsChanged, id)
		tx.emit(events.TypeSkillUnlocked, skillPayload{ID: id, Status: string(node.Status)})
	}
	j.skills = next
}

func (j *Journal) evaluate() []Command {
	snap := j.ledger.Snapshot()
	counters := achievement.CountersFrom(snap, j.trades.Count())
	ids := achievement.Evaluate(j.catalog.Achievements, counters, snap.UnlockedAchievements)

	cmds := make([]Command, 0, len(ids))
	for _, id := range ids {
		a, err := achievement.Find(j.catalog.Achievements, id)
		if err != nil {
			continue
		}
		cmds = append(cmds, UnlockAchievement{ID: a.ID, Reward: a.XPReward})
	}
	return cmds
}

type xpPayload struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason,omitempty"`
	Total  int    `json:"total"`
}

type achievementPayload struct {
	ID     string `json:"id"`
	Reward int    `json:"reward"`
	Total  int    `json:"total"`
}

type skillPayload struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
