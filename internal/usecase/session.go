package usecase

import "sync"

// Step marks the next field to collect during intake.
type Step int

const (
	StepName Step = iota + 1
	StepMobile
	StepProduct
	StepSize
	StepPcs
	StepAddress
)

// IntakeDraft is the partially filled order for one customer. It lives only
// in memory; an abandoned draft is garbage once superseded.
type IntakeDraft struct {
	Step    Step
	Name    string
	Mobile  string
	Product string
	Size    string
	Pcs     int
	Address string
}

// Sessions owns all ephemeral per-participant state: intake drafts keyed by
// customer, dispatch drafts keyed by approver, and the awaiting-proof
// marker that pins proof uploads to a specific order. All maps are keyed
// by participant identity, guarded by one mutex.
type Sessions struct {
	mu            sync.Mutex
	intake        map[string]*IntakeDraft
	awaitingProof map[string]string // customer id -> order id
	dispatch      map[string]string // approver id -> order id
}

func NewSessions() *Sessions {
	return &Sessions{
		intake:        make(map[string]*IntakeDraft),
		awaitingProof: make(map[string]string),
		dispatch:      make(map[string]string),
	}
}

// StartIntake opens a fresh draft, discarding any earlier one.
func (s *Sessions) StartIntake(customerID string) *IntakeDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := &IntakeDraft{Step: StepName}
	s.intake[customerID] = d
	return d
}

func (s *Sessions) Intake(customerID string) (*IntakeDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.intake[customerID]
	return d, ok
}

func (s *Sessions) ClearIntake(customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.intake, customerID)
}

func (s *Sessions) SetAwaitingProof(customerID, orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaitingProof[customerID] = orderID
}

func (s *Sessions) AwaitingProof(customerID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.awaitingProof[customerID]
	return id, ok
}

func (s *Sessions) ClearAwaitingProof(customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.awaitingProof, customerID)
}

// OpenDispatch records which order the approver is about to enter courier
// details for. One draft per approver; opening again retargets it.
func (s *Sessions) OpenDispatch(approverID, orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch[approverID] = orderID
}

func (s *Sessions) DispatchTarget(approverID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.dispatch[approverID]
	return id, ok
}

func (s *Sessions) ClearDispatch(approverID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dispatch, approverID)
}
