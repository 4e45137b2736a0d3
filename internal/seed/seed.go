// Package seed populates the store with synthetic insurance data. The row
// counts and status distributions follow the canonical fixture shape: four
// policy types, five agents, one to three policies per customer, claims on
// roughly thirty percent of policies, twenty prospects.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"
)

type Summary struct {
	Addresses   int `json:"addresses"`
	Agents      int `json:"agents"`
	Customers   int `json:"customers"`
	PolicyTypes int `json:"policy_types"`
	Policies    int `json:"policies"`
	Claims      int `json:"claims"`
	Prospects   int `json:"prospects"`
}

type Seeder struct {
	db  *sql.DB
	rng *rand.Rand
}

func New(db *sql.DB) *Seeder {
	return NewWithSeed(db, time.Now().UnixNano())
}

// NewWithSeed pins the random source, which keeps fixture runs reproducible
// in tests.
func NewWithSeed(db *sql.DB, seed int64) *Seeder {
	return &Seeder{db: db, rng: rand.New(rand.NewSource(seed))}
}

type policyType struct {
	id            int
	name          string
	description   string
	basePremium   float64
	coverageLimit float64
}

var canonicalPolicyTypes = []policyType{
	{1, "Basic Health", "Basic health insurance coverage", 200.0, 100000.0},
	{2, "Family Plan", "Health insurance for the whole family", 500.0, 500000.0},
	{3, "Senior Care", "Comprehensive coverage for seniors", 350.0, 300000.0},
	{4, "Student Health", "Affordable coverage for students", 150.0, 100000.0},
}

// HasData reports whether the fixture load already ran. The existence check
// lives with the caller, not inside Seed.
func (s *Seeder) HasData(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM policy_types").Scan(&count); err != nil {
		return false, fmt.Errorf("check policy_types: %w", err)
	}
	return count > 0, nil
}

// Seed inserts synthetic rows for roughly `records` people. It assumes empty
// tables; run it once after migration or after a reset.
func (s *Seeder) Seed(ctx context.Context, records int) (Summary, error) {
	if records < 6 {
		return Summary{}, fmt.Errorf("records must be at least 6, got %d", records)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var summary Summary

	for _, pt := range canonicalPolicyTypes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO policy_types (type_id, name, description, base_premium, coverage_limit) VALUES ($1, $2, $3, $4, $5)`,
			pt.id, pt.name, pt.description, pt.basePremium, pt.coverageLimit,
		); err != nil {
			return Summary{}, fmt.Errorf("insert policy type %q: %w", pt.name, err)
		}
		summary.PolicyTypes++
	}

	for i := 1; i <= records; i++ {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO addresses (address_id, street_address, city, state, zip_code, country) VALUES ($1, $2, $3, $4, $5, $6)`,
			i, s.streetAddress(), s.pick(cities), s.pick(states), s.zipCode(), "USA",
		); err != nil {
			return Summary{}, fmt.Errorf("insert address %d: %w", i, err)
		}
		summary.Addresses++
	}

	const agentCount = 5
	for i := 1; i <= agentCount; i++ {
		first, last := s.personName()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO agents (agent_id, first_name, last_name, email, phone, hire_date, address_id) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			i, first, last, s.email(first, last), s.phone(), s.dateBetween(-5*365, 0), i,
		); err != nil {
			return Summary{}, fmt.Errorf("insert agent %d: %w", i, err)
		}
		summary.Agents++
	}

	policyID := 0
	claimID := 0
	for i := agentCount + 1; i <= records; i++ {
		first, last := s.personName()
		customerID := i - agentCount
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO customers (customer_id, first_name, last_name, date_of_birth, email, phone, ssn, address_id) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			customerID, first, last, s.dateOfBirth(), s.email(first, last), s.phone(), s.ssn(), i,
		); err != nil {
			return Summary{}, fmt.Errorf("insert customer %d: %w", customerID, err)
		}
		summary.Customers++

		policyCount := s.rng.Intn(3) + 1
		for p := 0; p < policyCount; p++ {
			policyID++
			pt := canonicalPolicyTypes[s.rng.Intn(len(canonicalPolicyTypes))]
			startDate := s.dateBetween(-2*365, 0)
			endDate := startDate.AddDate(0, 0, 365)
			premium := pt.basePremium * (0.8 + s.rng.Float64()*0.4)
			status := s.weighted([]string{"Active", "Expired", "Cancelled"}, []float64{0.8, 0.15, 0.05})

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO policies (policy_id, policy_number, customer_id, agent_id, type_id, start_date, end_date, premium, status) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				policyID, fmt.Sprintf("POL-%08d", policyID), customerID, s.rng.Intn(agentCount)+1, pt.id, startDate, endDate, premium, status,
			); err != nil {
				return Summary{}, fmt.Errorf("insert policy %d: %w", policyID, err)
			}
			summary.Policies++

			if s.rng.Float64() > 0.7 {
				claimCount := s.rng.Intn(4) + 1
				for c := 0; c < claimCount; c++ {
					claimID++
					amountClaimed := 100 + s.rng.Float64()*(pt.coverageLimit*0.1-100)
					amountPaid := amountClaimed * (0.7 + s.rng.Float64()*0.3)
					claimStatus := s.weighted([]string{"Pending", "Approved", "Denied", "Paid"}, []float64{0.2, 0.3, 0.1, 0.4})

					if _, err := tx.ExecContext(ctx,
						`INSERT INTO claims (claim_id, claim_number, policy_id, customer_id, claim_date, description, amount_claimed, amount_paid, status) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
						claimID, fmt.Sprintf("CLM-%08d", claimID), policyID, customerID, s.timestampSince(startDate), s.pick(claimDescriptions), amountClaimed, amountPaid, claimStatus,
					); err != nil {
						return Summary{}, fmt.Errorf("insert claim %d: %w", claimID, err)
					}
					summary.Claims++
				}
			}
		}
	}

	const prospectCount = 20
	for i := 1; i <= prospectCount; i++ {
		first, last := s.personName()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO prospects (prospect_id, first_name, last_name, email, phone, source, status, notes, created_date) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			i, first, last, s.email(first, last), s.phone(),
			s.pick(prospectSources),
			s.pick([]string{"New", "Contacted", "Converted", "Not Interested"}),
			s.pick(prospectNotes),
			s.timestampSince(time.Now().AddDate(0, -6, 0)),
		); err != nil {
			return Summary{}, fmt.Errorf("insert prospect %d: %w", i, err)
		}
		summary.Prospects++
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("commit seed tx: %w", err)
	}
	return summary, nil
}

func (s *Seeder) pick(values []string) string {
	return values[s.rng.Intn(len(values))]
}

func (s *Seeder) weighted(values []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	target := s.rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target <= 0 {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func (s *Seeder) personName() (string, string) {
	return s.pick(firstNames), s.pick(lastNames)
}

func (s *Seeder) email(first, last string) string {
	domains := []string{"example.com", "example.org", "example.net"}
	return fmt.Sprintf("%s.%s%d@%s", lower(first), lower(last), s.rng.Intn(100), s.pick(domains))
}

func (s *Seeder) phone() string {
	return fmt.Sprintf("%03d-%03d-%04d", 200+s.rng.Intn(700), s.rng.Intn(1000), s.rng.Intn(10000))
}

func (s *Seeder) ssn() string {
	return fmt.Sprintf("%03d-%02d-%04d", 100+s.rng.Intn(800), s.rng.Intn(100), s.rng.Intn(10000))
}

func (s *Seeder) zipCode() string {
	return fmt.Sprintf("%05d", s.rng.Intn(100000))
}

func (s *Seeder) streetAddress() string {
	return fmt.Sprintf("%d %s", s.rng.Intn(9900)+100, s.pick(streetNames))
}

func (s *Seeder) dateBetween(minDays, maxDays int) time.Time {
	span := maxDays - minDays
	offset := minDays
	if span > 0 {
		offset += s.rng.Intn(span)
	}
	return truncateToDay(time.Now().AddDate(0, 0, offset))
}

func (s *Seeder) dateOfBirth() time.Time {
	age := 18 + s.rng.Intn(73)
	return truncateToDay(time.Now().AddDate(-age, 0, -s.rng.Intn(365)))
}

func (s *Seeder) timestampSince(start time.Time) time.Time {
	window := time.Since(start)
	if window <= 0 {
		return time.Now().UTC()
	}
	return start.Add(time.Duration(s.rng.Int63n(int64(window)))).UTC()
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func lower(value string) string {
	buf := []rune(value)
	for i, r := range buf {
		if r >= 'A' && r <= 'Z' {
			buf[i] = r + ('a' - 'A')
		}
	}
	return string(buf)
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Carlos", "Nancy", "Daniel",
	"Karen", "Ana", "Lisa", "Wei", "Margaret", "Omar", "Ruth",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Nguyen", "Clark", "Chen",
}

var cities = []string{
	"Springfield", "Riverside", "Franklin", "Greenville", "Bristol",
	"Clinton", "Fairview", "Salem", "Madison", "Georgetown", "Arlington",
	"Ashland", "Dover", "Oxford", "Burlington", "Milton",
}

var states = []string{
	"AL", "AZ", "CA", "CO", "FL", "GA", "IL", "IN", "MA", "MI",
	"NC", "NJ", "NY", "OH", "OR", "PA", "TX", "VA", "WA", "WI",
}

var streetNames = []string{
	"Main St", "Oak Ave", "Maple Dr", "Cedar Ln", "Park Blvd", "Elm St",
	"Washington Ave", "Lake Rd", "Hill St", "Sunset Blvd", "River Rd",
	"Highland Ave", "Church St", "Spring St", "Mill Rd",
}

var prospectSources = []string{
	"Web", "Referral", "Advertisement", "Cold Call", "Email Campaign",
}

var claimDescriptions = []string{
	"Emergency room visit following an accident.",
	"Routine annual physical examination.",
	"Outpatient surgery and follow-up care.",
	"Prescription medication reimbursement.",
	"Physical therapy sessions after injury.",
	"Diagnostic imaging and lab work.",
	"Specialist consultation and treatment.",
	"Urgent care visit for acute illness.",
}

var prospectNotes = []string{
	"Requested a quote for family coverage.",
	"Comparing plans with a competitor.",
	"Interested in senior care options.",
	"Asked about student discounts.",
	"Wants a callback next week.",
	"Left voicemail, no response yet.",
	"Met at community outreach event.",
}
