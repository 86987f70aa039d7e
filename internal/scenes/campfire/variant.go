package campfire

import (
	"math/rand/v2"

	"forgelight/internal/app"
	"forgelight/internal/graphics"
	"forgelight/internal/graphics/renderables/fire"
	"forgelight/internal/graphics/renderables/scenegraph"
	"forgelight/internal/graphics/renderables/skybox"
	renderer "forgelight/internal/graphics/renderer"
	"forgelight/internal/input"
	"forgelight/internal/particles"
	"forgelight/pkg/model"
)

// Per-program light tuning: the stones and embers catch a stronger light,
// and the ash never dims below near full brightness
const (
	StoneLightIntensity = 6
	AshMinFlicker       = 0.98
)

// Variant is the campfire demo
type Variant struct {
	Seed uint64

	meshes   []*graphics.Mesh
	programs []*graphics.Program
}

// New creates the campfire variant
func New(seed uint64) *Variant {
	return &Variant{Seed: seed}
}

func (v *Variant) Name() string { return "campfire" }

// Setup loads the assets, builds the tree under ctx.Root and returns the
// skybox, scene and fire passes
func (v *Variant) Setup(ctx *app.Context) ([]renderer.Renderable, error) {
	cfg := ctx.Config
	ok := false
	defer func() {
		if !ok {
			v.Dispose()
		}
	}()

	load := func(rel string) (*graphics.Mesh, error) {
		m, _, err := graphics.LoadMesh(cfg.Path(rel))
		if err != nil {
			return nil, err
		}
		v.meshes = append(v.meshes, m)
		return m, nil
	}
	program := func(vert, frag string) (*graphics.Program, error) {
		p, err := graphics.NewProgram(cfg.ShaderPath(vert), cfg.ShaderPath(frag))
		if err != nil {
			return nil, err
		}
		v.programs = append(v.programs, p)
		return p, nil
	}

	sword, err := load(cfg.Assets.Sword)
	if err != nil {
		return nil, err
	}
	ash, err := load(cfg.Assets.Ash)
	if err != nil {
		return nil, err
	}
	stone, err := load(cfg.Assets.Stone)
	if err != nil {
		return nil, err
	}
	terrain, err := load(cfg.Assets.Terrain)
	if err != nil {
		return nil, err
	}
	marker := graphics.NewMesh(model.Cube(1))
	v.meshes = append(v.meshes, marker)

	lit, err := program("blinnphong.vert", "blinnphong.frag")
	if err != nil {
		return nil, err
	}
	ashMat, err := program("procedural.vert", "ash.frag")
	if err != nil {
		return nil, err
	}
	stones, err := program("procedural.vert", "stones.frag")
	if err != nil {
		return nil, err
	}
	embers, err := program("procedural.vert", "embers.frag")
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(v.Seed, v.Seed))
	err = Assemble(ctx.Root, Parts{
		Sword:          sword,
		SwordSubmeshes: sword.SubmeshCount(),
		Marker:         marker,
		Ash:            ash,
		Stone:          stone,
		Terrain:        terrain,
		Lit:            lit,
		AshMat:         ashMat,
		Stones:         stones,
		Embers:         embers,
	}, rng)
	if err != nil {
		return nil, err
	}

	ctx.Light = graphics.Light{
		Position:  LightPos,
		Color:     LightColor,
		Intensity: 1,
		Flicker:   graphics.Flicker(0),
	}

	// the scene pass owns the programs from here on
	sg := scenegraph.NewSceneGraph(v.programs...)
	v.programs = nil
	sg.Tune(ashMat, scenegraph.Tuning{MinFlicker: AshMinFlicker})
	sg.Tune(stones, scenegraph.Tuning{Intensity: StoneLightIntensity})
	sg.Tune(embers, scenegraph.Tuning{Intensity: StoneLightIntensity})

	sim := particles.NewFire(particles.DefaultCenter, particles.DefaultRadius, particles.DefaultCount, v.Seed)
	shaders := cfg.Path(cfg.Assets.Shaders)

	ok = true
	return []renderer.Renderable{
		skybox.NewSkybox(shaders, cfg.Path(cfg.Assets.Skybox)),
		sg,
		fire.NewFire(shaders, sim),
	}, nil
}

// Update advances the fire light flicker
func (v *Variant) Update(ctx *app.Context, im *input.InputManager, dt float64) {
	ctx.Light.Flicker = graphics.Flicker(ctx.Time)
}

// Dispose releases the meshes and any programs not handed to a pass
func (v *Variant) Dispose() {
	for _, m := range v.meshes {
		m.Dispose()
	}
	v.meshes = nil
	for _, p := range v.programs {
		p.Dispose()
	}
	v.programs = nil
}
