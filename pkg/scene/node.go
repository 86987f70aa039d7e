// Package scene implements a transform tree: nodes carry a local transform
// relative to their parent, an optional mesh and material, and an independent
// keyframe animation. Traversals compose parent transforms top-down.
//
// A Node exclusively owns its children. Meshes and materials are borrowed:
// whoever creates them must keep them alive for as long as any node refers to them.
package scene

import (
	"errors"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// AllSubmeshes selects every submesh of a node's mesh.
const AllSubmeshes = -1

// Uniform names supplied to a node's material on every draw.
const (
	UniformModelMatrix = "ModelMatrix"
	UniformBaseColor   = "baseColor"
	UniformAmbient     = "ambientStrength"
	UniformSpecular    = "specularStrength"
	UniformShininess   = "shininess"
)

var (
	ErrNilNode         = errors.New("scene: nil node")
	ErrAlreadyAttached = errors.New("scene: node already has a parent")
	ErrCycle           = errors.New("scene: node cannot be attached below itself")
)

// Renderable is geometry that can be drawn whole or one submesh at a time.
type Renderable interface {
	DrawAll()
	DrawSubmesh(index int)
}

// Material is a shader program that receives per-node uniforms.
type Material interface {
	Bind()
	Unbind()
	SetMatrix4(name string, m mgl32.Mat4)
	SetVector3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
}

// Surface holds the Blinn-Phong parameters of a node. They are not inherited.
type Surface struct {
	Color     mgl32.Vec3
	Ambient   float32
	Specular  float32
	Shininess float32
}

// DefaultSurface is white with mild ambient and a medium highlight.
func DefaultSurface() Surface {
	return Surface{
		Color:     mgl32.Vec3{1, 1, 1},
		Ambient:   0.1,
		Specular:  0.5,
		Shininess: 32,
	}
}

// Node is one element of the transform tree.
type Node struct {
	ID   uuid.UUID
	Name string

	// Local is the transform relative to the parent.
	Local mgl32.Mat4

	Mesh     Renderable
	Material Material
	// Submesh is either AllSubmeshes or the index of the single submesh to draw.
	Submesh int
	Surface Surface

	parent   *Node
	children []*Node
	anim     Animation
}

// NewNode returns a detached group node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:      uuid.New(),
		Name:    name,
		Local:   mgl32.Ident4(),
		Submesh: AllSubmeshes,
		Surface: DefaultSurface(),
		anim:    newAnimation(),
	}
}

// AddChild appends child to the end of the draw order. The child must be
// detached and must not be n or one of its ancestors.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return ErrNilNode
	}
	if child.parent != nil {
		return ErrAlreadyAttached
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child and its whole subtree. It reports whether child
// was a direct child of n.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = slices.Delete(n.children, i, i+1)
			child.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children in draw order. The slice is a copy.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len counts n and all of its descendants.
func (n *Node) Len() int {
	count := 1
	for _, c := range n.children {
		count += c.Len()
	}
	return count
}

// WorldTransform composes the local transforms from the root down to n.
func (n *Node) WorldTransform() mgl32.Mat4 {
	if n.parent == nil {
		return n.Local
	}
	return n.parent.WorldTransform().Mul4(n.Local)
}

// Walk visits the subtree in draw order with each node's world transform,
// starting from the given parent transform. Returning false from fn skips
// that node's children.
func (n *Node) Walk(parent mgl32.Mat4, fn func(node *Node, world mgl32.Mat4) bool) {
	world := parent.Mul4(n.Local)
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.Walk(world, fn)
	}
}

// Find returns the node with the given id in the subtree, or nil.
func (n *Node) Find(id uuid.UUID) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Draw renders the subtree. The node's own geometry is drawn only when both a
// mesh and a material are set; children are drawn regardless, after the node,
// in insertion order.
func (n *Node) Draw(parent mgl32.Mat4) {
	world := parent.Mul4(n.Local)

	if n.Mesh != nil && n.Material != nil {
		n.Material.Bind()
		n.Material.SetMatrix4(UniformModelMatrix, world)
		n.Material.SetVector3(UniformBaseColor, n.Surface.Color)
		n.Material.SetFloat(UniformAmbient, n.Surface.Ambient)
		n.Material.SetFloat(UniformSpecular, n.Surface.Specular)
		n.Material.SetFloat(UniformShininess, n.Surface.Shininess)

		if n.Submesh >= 0 {
			n.Mesh.DrawSubmesh(n.Submesh)
		} else {
			n.Mesh.DrawAll()
		}

		n.Material.Unbind()
	}

	for _, c := range n.children {
		c.Draw(world)
	}
}
