// Package pickagram builds the seven piece puzzle whose pieces slide between
// the solved square and a figure.
package pickagram

import (
	"fmt"

	"forgelight/pkg/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// PieceCount is the number of puzzle pieces
const PieceCount = 7

// Pose places a piece on the board: an offset in the board plane and a turn
// about the board normal
type Pose struct {
	Offset mgl32.Vec3
	Turn   float32 // degrees
}

// Mat4 returns the pose as a rigid transform
func (p Pose) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(p.Offset[0], p.Offset[1], p.Offset[2]).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(p.Turn)))
}

// Square is the solved layout: the pieces as modelled
var Square = [PieceCount]Pose{}

// Figure is the layout the pieces slide to
var Figure = [PieceCount]Pose{
	{Offset: mgl32.Vec3{-0.6, 1.4, 0}, Turn: 45},
	{Offset: mgl32.Vec3{0.9, 1.1, 0}, Turn: -90},
	{Offset: mgl32.Vec3{-1.3, -0.2, 0}, Turn: 180},
	{Offset: mgl32.Vec3{0.4, -0.9, 0}, Turn: 135},
	{Offset: mgl32.Vec3{1.5, -0.4, 0}, Turn: 90},
	{Offset: mgl32.Vec3{-0.2, 0.3, 0}, Turn: -45},
	{Offset: mgl32.Vec3{-1.1, -1.3, 0}, Turn: 30},
}

// Colors tint the pieces in order
var Colors = [PieceCount]mgl32.Vec3{
	{0.90, 0.30, 0.25},
	{0.95, 0.65, 0.20},
	{0.95, 0.90, 0.30},
	{0.40, 0.80, 0.35},
	{0.25, 0.65, 0.90},
	{0.45, 0.35, 0.85},
	{0.85, 0.40, 0.75},
}

// Assemble adds a board node under root with one child per piece. Piece i
// draws submesh i of mesh and animates from Square[i] to Figure[i].
func Assemble(root *scene.Node, mesh scene.Renderable, submeshes int, mat scene.Material, speed float32) ([]*scene.Node, error) {
	if submeshes < PieceCount {
		return nil, errors.Errorf("pickagram: need %d pieces, model has %d", PieceCount, submeshes)
	}

	board := scene.NewNode("board")
	if err := root.AddChild(board); err != nil {
		return nil, err
	}

	pieces := make([]*scene.Node, PieceCount)
	for i := range pieces {
		n := scene.NewNode(fmt.Sprintf("piece%d", i+1))
		n.Mesh = mesh
		n.Material = mat
		n.Submesh = i
		n.Surface.Color = Colors[i]
		n.Surface.Ambient = 0.2
		n.Surface.Specular = 0.4
		n.Surface.Shininess = 16
		n.SetAnimationTargets(Square[i].Mat4(), Figure[i].Mat4(), 0, speed)
		if err := board.AddChild(n); err != nil {
			return nil, err
		}
		pieces[i] = n
	}
	return pieces, nil
}

// CommandAll sends the same direction to every piece
func CommandAll(pieces []*scene.Node, d scene.Direction) {
	for _, p := range pieces {
		p.CommandAnimation(d)
	}
}

// Toggle sends a piece resting on the start side towards the figure. Any
// other piece, idle near the figure or still moving, heads back to start.
func Toggle(piece *scene.Node) {
	a := piece.Animation()
	if a.Direction == scene.Stopped && a.Progress < 0.5 {
		piece.CommandAnimation(scene.ToTarget)
		return
	}
	piece.CommandAnimation(scene.ToStart)
}
