package synth

//go:generate mockgen -destination=mock_tracer_test.go -package=synth . Tracer

// NodeKind names the recursion step that produced an event.
type NodeKind string

const (
	NodeFlat      NodeKind = "flat"
	NodeBasis     NodeKind = "basis"
	NodeQuantum   NodeKind = "quantum"
	NodePunctured NodeKind = "punctured"
	NodeNo1       NodeKind = "basis_no1"
	NodeLeaf      NodeKind = "leaf"
)

// NodeEvent describes one recursion node. S is the stabilizer degree (-1 for classical
// nodes), T the logical degree; the gate counts cover the node's own layer only.
type NodeEvent struct {
	Variant   Variant
	Kind      NodeKind
	S, T, M   int
	CNOTs     int
	Hadamards int
}

// Tracer observes synthesis. Implementations must be safe for the caller's use;
// the engine calls Node from a single goroutine per synthesis.
type Tracer interface {
	Node(ev NodeEvent)
}

type nopTracer struct{}

func (nopTracer) Node(NodeEvent) {}
