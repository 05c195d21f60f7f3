// Package barneshut implementuje aproksymację Barnesa-Huta dla sił
// grawitacyjnych: drzewo czwórkowe nad stałym prostokątem domeny oraz
// równoległy ewaluator sił O(n log n).
package barneshut

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"nbody-sim/pkg/physics"
)

// minCellSize - minimalna szerokość/wysokość komórki, poniżej której nie
// dzielimy dalej (zapobiega nieskończonej rekursji dla pokrywających się
// ciał). Liść może wtedy trwale przekroczyć pojemność.
const minCellSize = 1.0

// --- Prostokąt domeny ---
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }
func (b Bounds) MidX() float64   { return (b.MinX + b.MaxX) / 2 }
func (b Bounds) MidY() float64   { return (b.MinY + b.MaxY) / 2 }

// MaxExtent zwraca większy z wymiarów prostokąta (s w kryterium theta).
func (b Bounds) MaxExtent() float64 {
	w, h := b.Width(), b.Height()
	if w > h {
		return w
	}
	return h
}

func (b Bounds) Contains(p mgl64.Vec2) bool {
	return b.MinX <= p.X() && p.X() < b.MaxX && b.MinY <= p.Y() && p.Y() < b.MaxY
}

// quadrantFor wyznacza ćwiartkę dla pozycji względem środka prostokąta:
// 0 - lewa górna (x<mid, y>=mid), 1 - prawa górna (x>=mid, y>=mid),
// 2 - lewa dolna (x<mid, y<mid), 3 - prawa dolna (x>=mid, y<mid).
// Ta sama konwencja obowiązuje przy wstawianiu i przy wyliczaniu
// prostokątów dzieci.
func quadrantFor(pos mgl64.Vec2, b Bounds) int {
	midX, midY := b.MidX(), b.MidY()
	switch {
	case pos.X() < midX && pos.Y() >= midY:
		return 0
	case pos.X() >= midX && pos.Y() >= midY:
		return 1
	case pos.X() < midX && pos.Y() < midY:
		return 2
	default:
		return 3
	}
}

// childBounds dzieli prostokąt rodzica w punkcie środkowym i zwraca
// ćwiartkę o podanym indeksie. Drzewo nie przechowuje prostokątów w
// węzłach - są przeliczane z góry na dół podczas każdej trawersacji.
func childBounds(parent Bounds, quadrant int) Bounds {
	midX, midY := parent.MidX(), parent.MidY()
	switch quadrant {
	case 0:
		return Bounds{parent.MinX, midX, midY, parent.MaxY}
	case 1:
		return Bounds{midX, parent.MaxX, midY, parent.MaxY}
	case 2:
		return Bounds{parent.MinX, midX, parent.MinY, midY}
	case 3:
		return Bounds{midX, parent.MaxX, parent.MinY, midY}
	default:
		panic(fmt.Sprintf("invalid quadrant: %d", quadrant))
	}
}

// --- Węzeł drzewa ---
// Node jest wariantem liść/wewnętrzny w jednej strukturze: liść trzyma
// indeksy ciał (do zewnętrznej tablicy), węzeł wewnętrzny cztery dzieci.
// Masa całkowita i środek masy są wypełniane w Build dla obu wariantów.
type Node struct {
	bodies   []int
	children [4]*Node
	com      mgl64.Vec2
	mass     float64
	leaf     bool
}

func newLeaf() *Node {
	return &Node{leaf: true}
}

func (n *Node) IsLeaf() bool { return n.leaf }

// Bodies zwraca indeksy ciał w liściu (nil dla węzła wewnętrznego).
func (n *Node) Bodies() []int { return n.bodies }

// Child zwraca dziecko o indeksie ćwiartki (nil dla liścia).
func (n *Node) Child(quadrant int) *Node { return n.children[quadrant] }

// TotalMass zwraca sumę mas ciał w poddrzewie.
func (n *Node) TotalMass() float64 { return n.mass }

// CenterOfMass zwraca środek masy poddrzewa. Dla poddrzewa o masie 0
// wartość jest niezdefiniowana i nie powinna być używana.
func (n *Node) CenterOfMass() mgl64.Vec2 { return n.com }

// --- Drzewo czwórkowe ---
// Tree jest budowane od zera w każdym kroku symulacji nad stałym
// prostokątem domeny (nie jest to bounding box ciał). Ciała spoza
// domeny trafiają do skrajnych ćwiartek - to zaakceptowane zachowanie,
// domena ma być dobrana odpowiednio duża.
type Tree struct {
	root    *Node
	bounds  Bounds
	leafCap int
}

// New tworzy puste drzewo. Zwraca błąd dla zdegenerowanej domeny
// (min >= max na którejś osi) lub pojemności liścia < 1.
func New(bounds Bounds, leafCapacity int) (*Tree, error) {
	if bounds.MinX >= bounds.MaxX || bounds.MinY >= bounds.MaxY {
		return nil, fmt.Errorf("niepoprawna domena: (%g, %g, %g, %g)",
			bounds.MinX, bounds.MaxX, bounds.MinY, bounds.MaxY)
	}
	if leafCapacity < 1 {
		return nil, fmt.Errorf("pojemność liścia musi być >= 1, jest %d", leafCapacity)
	}
	return &Tree{
		root:    newLeaf(),
		bounds:  bounds,
		leafCap: leafCapacity,
	}, nil
}

func (t *Tree) Root() *Node       { return t.root }
func (t *Tree) Bounds() Bounds    { return t.bounds }
func (t *Tree) LeafCapacity() int { return t.leafCap }

// Build resetuje drzewo do pustego liścia, wstawia wszystkie indeksy
// ciał po kolei i agreguje masy. Kolejność wstawiania wpływa tylko na
// kolejność indeksów wewnątrz liści, nie na kształt drzewa.
func (t *Tree) Build(bodies []physics.Body) {
	t.root = newLeaf()
	for i := range bodies {
		insertBody(t.root, i, t.bounds, bodies, t.leafCap)
	}
	aggregateMass(t.root, bodies)
}

func insertBody(n *Node, bodyIndex int, nodeBounds Bounds, bodies []physics.Body, leafCap int) {
	if n.leaf {
		n.bodies = append(n.bodies, bodyIndex)
		if len(n.bodies) > leafCap && len(n.bodies) > 1 {
			subdivide(n, nodeBounds, bodies, leafCap)
		}
		return
	}
	q := quadrantFor(bodies[bodyIndex].Pos, nodeBounds)
	insertBody(n.children[q], bodyIndex, childBounds(nodeBounds, q), bodies, leafCap)
}

// subdivide zamienia liść w węzeł wewnętrzny z czterema pustymi liśćmi
// i wstawia ponownie trzymane indeksy. Gdy komórka jest już mniejsza niż
// minCellSize podział jest pomijany - liść zostaje przepełniony.
func subdivide(n *Node, nodeBounds Bounds, bodies []physics.Body, leafCap int) {
	if nodeBounds.Width() < minCellSize || nodeBounds.Height() < minCellSize {
		return
	}
	old := n.bodies
	n.bodies = nil
	n.leaf = false
	for q := 0; q < 4; q++ {
		n.children[q] = newLeaf()
	}
	for _, idx := range old {
		q := quadrantFor(bodies[idx].Pos, nodeBounds)
		insertBody(n.children[q], idx, childBounds(nodeBounds, q), bodies, leafCap)
	}
}

// aggregateMass wypełnia masy i środki masy jednym przejściem post-order.
// Dzieci o masie 0 (puste poddrzewa) są pomijane, żeby nie zaburzać
// środka masy.
func aggregateMass(n *Node, bodies []physics.Body) {
	total := 0.0
	weighted := mgl64.Vec2{0, 0}

	if n.leaf {
		for _, idx := range n.bodies {
			b := &bodies[idx]
			total += b.Mass
			weighted = weighted.Add(b.Pos.Mul(b.Mass))
		}
	} else {
		for _, child := range n.children {
			aggregateMass(child, bodies)
			if child.mass > 0 {
				total += child.mass
				weighted = weighted.Add(child.com.Mul(child.mass))
			}
		}
	}

	if total > 0 {
		n.mass = total
		n.com = weighted.Mul(1.0 / total)
	}
}

// Walk odwiedza węzły z góry na dół, przeliczając prostokąty tym samym
// podziałem co przy wstawianiu. Używane przez nakładkę rysującą drzewo
// i przez testy.
func (t *Tree) Walk(fn func(n *Node, b Bounds)) {
	walk(t.root, t.bounds, fn)
}

func walk(n *Node, b Bounds, fn func(n *Node, b Bounds)) {
	fn(n, b)
	if n.leaf {
		return
	}
	for q, child := range n.children {
		walk(child, childBounds(b, q), fn)
	}
}
