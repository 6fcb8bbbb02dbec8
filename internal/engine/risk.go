package engine

import (
	"fmt"
	"time"

	"pausenhof-backend/internal/models"
)

// The shared crime cooldown is always re-armed for this long, win or lose.
const crimeCooldown = 60 * time.Second

// Per-level scaling applied to crime rewards.
const crimeRewardPerLevel = 0.10

type modifiers struct {
	crimeBonus float64
	hackBonus  float64
	jailFactor float64
}

// computeModifiers folds passive items and live buffs into one modifier
// set. Expired buffs are pruned here rather than surfaced as errors.
func computeModifiers(acc *models.Account, now time.Time) modifiers {
	m := modifiers{jailFactor: 1}
	for key := range acc.Inventory {
		item, ok := models.Items[key]
		if !ok || !item.Passive {
			continue
		}
		m.crimeBonus += item.CrimeBonus
		m.hackBonus += item.HackBonus
		if item.JailFactor > 0 {
			m.jailFactor *= item.JailFactor
		}
	}
	for key, expiry := range acc.Buffs {
		if expiry <= now.Unix() {
			delete(acc.Buffs, key)
			continue
		}
		item, ok := models.Items[key]
		if !ok {
			continue
		}
		m.crimeBonus += item.CrimeBonus
		m.hackBonus += item.HackBonus
	}
	return m
}

type WorkResult struct {
	AccountState
	Job           string  `json:"job"`
	Salary        float64 `json:"salary"`
	LeveledUp     bool    `json:"leveled_up"`
	CooldownUntil int64   `json:"cooldown_until"`
	Message       string  `json:"message"`
}

// Work executes a job: deterministic salary, XP, and a per-job cooldown.
func (e *Engine) Work(name, jobKey string) (*WorkResult, error) {
	job, ok := models.Jobs[jobKey]
	if !ok {
		return nil, ErrUnknownJob
	}

	var res *WorkResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		now := e.now()
		if acc.JailUntil > now.Unix() {
			return ErrInJail
		}
		if acc.Level < job.RequiredLevel {
			return ErrLevelTooLow
		}
		if acc.Cooldowns[jobKey] > now.Unix() {
			return ErrOnCooldown
		}

		acc.Balance += job.Salary
		leveled, _ := GrantXP(acc, job.XP)
		acc.Cooldowns[jobKey] = now.Add(job.Cooldown).Unix()

		res = &WorkResult{
			AccountState:  stateOf(acc),
			Job:           jobKey,
			Salary:        job.Salary,
			LeveledUp:     leveled,
			CooldownUntil: acc.Cooldowns[jobKey],
			Message:       fmt.Sprintf("You worked as %s: +%s", job.Name, models.FormatCurrency(job.Salary)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.ledger.AppendTransaction(models.NewTransaction(
		name, models.TransactionTypeIncome, job.Salary, res.Balance,
		fmt.Sprintf("Worked as %s", job.Name)))
	return res, nil
}

type CrimeResult struct {
	AccountState
	Crime     string  `json:"crime"`
	Success   bool    `json:"success"`
	Reward    float64 `json:"reward,omitempty"`
	Penalty   float64 `json:"penalty,omitempty"`
	JailUntil int64   `json:"jail_until,omitempty"`
	LeveledUp bool    `json:"leveled_up"`
	Message   string  `json:"message"`
}

// CommitCrime rolls one uniform sample against the variant's chance plus
// item and buff bonuses. The shared crime cooldown is set regardless of
// outcome. Failure jails the account and then takes 10% of whatever the
// balance is at that moment.
func (e *Engine) CommitCrime(name, crimeKey string) (*CrimeResult, error) {
	crime, ok := models.Crimes[crimeKey]
	if !ok {
		return nil, ErrUnknownCrime
	}

	var res *CrimeResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		now := e.now()
		if acc.JailUntil > now.Unix() {
			return ErrInJail
		}
		if acc.Cooldowns[models.CrimeCooldownKey] > now.Unix() {
			return ErrOnCooldown
		}

		acc.Cooldowns[models.CrimeCooldownKey] = now.Add(crimeCooldown).Unix()

		mods := computeModifiers(acc, now)
		chance := crime.BaseChance + mods.crimeBonus
		if crimeKey == "hack" {
			chance += mods.hackBonus
		}

		res = &CrimeResult{Crime: crimeKey}
		if e.rng.Float64() < chance {
			reward := crime.RewardMin + e.rng.Float64()*(crime.RewardMax-crime.RewardMin)
			reward *= 1 + crimeRewardPerLevel*float64(acc.Level-1)
			acc.Balance += reward
			leveled, _ := GrantXP(acc, crime.XP)

			res.Success = true
			res.Reward = reward
			res.LeveledUp = leveled
			res.Message = fmt.Sprintf("%s paid off: +%s", crime.Name, models.FormatCurrency(reward))
		} else {
			jail := time.Duration(float64(crime.JailTime) * mods.jailFactor)
			acc.JailUntil = now.Add(jail).Unix()
			penalty := acc.Balance * 0.10
			acc.Balance -= penalty

			res.Penalty = penalty
			res.JailUntil = acc.JailUntil
			res.Message = fmt.Sprintf("Caught! Jailed for %s and fined %s", jail, models.FormatCurrency(penalty))
		}
		res.AccountState = stateOf(acc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type ItemResult struct {
	AccountState
	Item      string         `json:"item"`
	Inventory map[string]int `json:"inventory"`
	Message   string         `json:"message"`
}

// BuyItem adds one unit of a shop item to the inventory.
func (e *Engine) BuyItem(name, itemKey string) (*ItemResult, error) {
	item, ok := models.Items[itemKey]
	if !ok {
		return nil, ErrUnknownItem
	}

	var res *ItemResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Balance < item.Cost {
			return ErrInsufficientFunds
		}
		acc.Balance -= item.Cost
		acc.Inventory[itemKey]++

		res = &ItemResult{
			AccountState: stateOf(acc),
			Item:         itemKey,
			Inventory:    copyCounts(acc.Inventory),
			Message:      fmt.Sprintf("Bought %s for %s", item.Name, models.FormatCurrency(item.Cost)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.ledger.AppendTransaction(models.NewTransaction(
		name, models.TransactionTypePurchase, -item.Cost, res.Balance,
		fmt.Sprintf("Bought %s", item.Name)))
	return res, nil
}

// UseItem consumes one unit of a consumable, installing its timed buff.
// Passive items cannot be used; their effect applies while owned.
func (e *Engine) UseItem(name, itemKey string) (*ItemResult, error) {
	item, ok := models.Items[itemKey]
	if !ok {
		return nil, ErrUnknownItem
	}
	if item.Passive {
		return nil, ErrNotConsumable
	}

	var res *ItemResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Inventory[itemKey] <= 0 {
			return ErrItemNotOwned
		}

		acc.Inventory[itemKey]--
		if acc.Inventory[itemKey] == 0 {
			delete(acc.Inventory, itemKey)
		}

		// Using another while a buff is live extends it.
		now := e.now().Unix()
		base := now
		if acc.Buffs[itemKey] > now {
			base = acc.Buffs[itemKey]
		}
		acc.Buffs[itemKey] = base + int64(item.BuffDuration.Seconds())

		res = &ItemResult{
			AccountState: stateOf(acc),
			Item:         itemKey,
			Inventory:    copyCounts(acc.Inventory),
			Message:      fmt.Sprintf("%s active until %s", item.Name, time.Unix(acc.Buffs[itemKey], 0).Format("15:04:05")),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
