package models

import "time"

// Job is a deterministic income action gated by level and its own cooldown.
type Job struct {
	Name          string        `json:"name"`
	RequiredLevel int           `json:"required_level"`
	Salary        float64       `json:"salary"`
	Cooldown      time.Duration `json:"-"`
	XP            int           `json:"xp"`
}

var Jobs = map[string]Job{
	"paperboy": {Name: "Paperboy", RequiredLevel: 1, Salary: 25, Cooldown: time.Minute, XP: 10},
	"tutor":    {Name: "Homework Tutor", RequiredLevel: 2, Salary: 60, Cooldown: 3 * time.Minute, XP: 20},
	"barista":  {Name: "Kiosk Barista", RequiredLevel: 4, Salary: 120, Cooldown: 5 * time.Minute, XP: 35},
	"coder":    {Name: "Freelance Coder", RequiredLevel: 7, Salary: 300, Cooldown: 10 * time.Minute, XP: 60},
	"manager":  {Name: "Yard Manager", RequiredLevel: 10, Salary: 700, Cooldown: 15 * time.Minute, XP: 100},
}

// Crime is a probabilistic action sharing one cooldown across all
// variants. Failure lands the account in jail and costs 10% of balance.
type Crime struct {
	Name       string        `json:"name"`
	BaseChance float64       `json:"base_chance"`
	RewardMin  float64       `json:"reward_min"`
	RewardMax  float64       `json:"reward_max"`
	JailTime   time.Duration `json:"-"`
	XP         int           `json:"xp"`
}

var Crimes = map[string]Crime{
	"pickpocket": {Name: "Pickpocketing", BaseChance: 0.60, RewardMin: 20, RewardMax: 60, JailTime: time.Minute, XP: 15},
	"shoplift":   {Name: "Kiosk Shoplifting", BaseChance: 0.50, RewardMin: 50, RewardMax: 140, JailTime: 2 * time.Minute, XP: 25},
	"burglary":   {Name: "Locker Burglary", BaseChance: 0.35, RewardMin: 150, RewardMax: 400, JailTime: 5 * time.Minute, XP: 50},
	"hack":       {Name: "Grade Hack", BaseChance: 0.25, RewardMin: 400, RewardMax: 900, JailTime: 10 * time.Minute, XP: 90},
	"heist":      {Name: "Cafeteria Heist", BaseChance: 0.15, RewardMin: 1000, RewardMax: 2500, JailTime: 20 * time.Minute, XP: 150},
}

// CrimeCooldownKey is the shared cooldown slot set by every crime attempt,
// independent of job cooldowns.
const CrimeCooldownKey = "crime"

// Item is either a permanent passive (modifier applies while owned) or a
// consumable that installs a timed buff keyed by the item key.
type Item struct {
	Name         string        `json:"name"`
	Cost         float64       `json:"cost"`
	Passive      bool          `json:"passive"`
	CrimeBonus   float64       `json:"crime_bonus,omitempty"`
	HackBonus    float64       `json:"hack_bonus,omitempty"`
	JailFactor   float64       `json:"jail_factor,omitempty"`
	BuffDuration time.Duration `json:"-"`
}

var Items = map[string]Item{
	"lockpick":     {Name: "Lockpick Set", Cost: 500, Passive: true, CrimeBonus: 0.10},
	"lawyer":       {Name: "Lawyer on Call", Cost: 1500, Passive: true, JailFactor: 0.5},
	"laptop":       {Name: "Hacker Laptop", Cost: 2000, Passive: true, HackBonus: 0.15},
	"energy_drink": {Name: "Energy Drink", Cost: 150, CrimeBonus: 0.08, BuffDuration: 15 * time.Minute},
	"fake_id":      {Name: "Fake Hall Pass", Cost: 400, CrimeBonus: 0.12, BuffDuration: 30 * time.Minute},
}

// Business yields passive income per second, collected on demand.
type Business struct {
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	IncomePerSec float64 `json:"income_per_sec"`
}

var Businesses = map[string]Business{
	"stift": {Name: "Pen Rental", Cost: 100, IncomePerSec: 1},
	"kiosk": {Name: "Break Kiosk", Cost: 1000, IncomePerSec: 15},
	"mafia": {Name: "Schoolyard Mafia", Cost: 5000, IncomePerSec: 100},
}

// StockSeed defines a market instrument's initial listing.
type StockSeed struct {
	Symbol     string
	Name       string
	Price      float64
	Volatility float64
}

var StockSeeds = []StockSeed{
	{Symbol: "STFT", Name: "Stift Industries", Price: 25, Volatility: 0.08},
	{Symbol: "KIOS", Name: "Kiosk Holding", Price: 120, Volatility: 0.04},
	{Symbol: "SCHL", Name: "Schulhof Media", Price: 80, Volatility: 0.06},
	{Symbol: "MAFA", Name: "Mafia Ventures", Price: 300, Volatility: 0.12},
	{Symbol: "LIMO", Name: "Limo Brothers", Price: 50, Volatility: 0.05},
}
