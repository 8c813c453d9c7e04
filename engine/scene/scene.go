package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/google/uuid"
)

// Scene owns a forest of GameObjects together with the Camera and Renderer used to draw them.
// Scenes can be hot-swapped via the Active flag to switch between different views.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Count returns the number of root nodes attached to the scene.
	//
	// Returns:
	//   - int: root count
	Count() int

	// Roots returns the root nodes in attachment order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the root list
	Roots() []game_object.GameObject

	// Add attaches obj as a root node. Adding a node that is already a root is a no-op.
	//
	// Parameters:
	//   - obj: the node to attach
	//
	// Returns:
	//   - uuid.UUID: the node identity
	Add(obj game_object.GameObject) uuid.UUID

	// Get finds a node anywhere in the scene by identity.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the node identity
	//
	// Returns:
	//   - game_object.GameObject: the node or nil
	Get(id uuid.UUID) game_object.GameObject

	// Remove detaches the node with the given identity, whether it is a root or nested.
	//
	// Parameters:
	//   - id: the node identity
	//
	// Returns:
	//   - bool: true if a node was removed
	Remove(id uuid.UUID) bool

	// Traverse walks every root subtree depth-first. Returning false from fn prunes that node's children.
	//
	// Parameters:
	//   - fn: visitor
	Traverse(fn func(game_object.GameObject) bool)

	// Clear detaches every root node.
	Clear()

	// Update advances node rotation speeds and recomputes the camera matrices.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// DrawCalls submits every visible mesh reachable through visible ancestors.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - int: number of meshes submitted
	DrawCalls() int
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer

	roots []game_object.GameObject
}

var _ Scene = &scene{}

// NewScene creates a new inactive Scene.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera used for drawing
//   - r: the renderer the scene draws into
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:   &sync.RWMutex{},
		name: name,
		cam:  cam,
		r:    r,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.roots)
}

func (s *scene) Roots() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.roots))
	copy(out, s.roots)
	return out
}

func (s *scene) Add(obj game_object.GameObject) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(obj)
	return obj.ID()
}

// add appends obj to the root list. Caller must hold the write lock.
func (s *scene) add(obj game_object.GameObject) {
	for _, r := range s.roots {
		if r.ID() == obj.ID() {
			return
		}
	}
	if p := obj.Parent(); p != nil {
		p.RemoveChild(obj.ID())
	}
	s.roots = append(s.roots, obj)
}

func (s *scene) Get(id uuid.UUID) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roots {
		if found := r.Find(id); found != nil {
			return found
		}
	}
	return nil
}

func (s *scene) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.roots {
		if r.ID() == id {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			return true
		}
		if found := r.Find(id); found != nil {
			return found.Parent().RemoveChild(id)
		}
	}
	return false
}

func (s *scene) Traverse(fn func(game_object.GameObject) bool) {
	for _, r := range s.Roots() {
		r.Traverse(fn)
	}
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roots = nil
}

func (s *scene) Update(deltaTime float32) {
	s.mu.RLock()
	roots := make([]game_object.GameObject, len(s.roots))
	copy(roots, s.roots)
	cam := s.cam
	s.mu.RUnlock()

	for _, r := range roots {
		r.Advance(deltaTime)
	}
	if cam != nil {
		cam.Update()
	}
}

func (s *scene) DrawCalls() int {
	s.mu.RLock()
	roots := make([]game_object.GameObject, len(s.roots))
	copy(roots, s.roots)
	cam, r := s.cam, s.r
	s.mu.RUnlock()

	if r == nil {
		return 0
	}
	if cam != nil {
		r.SetViewProjection(cam.ViewProjectionMatrix())
	}

	var identity [16]float32
	common.Identity(identity[:])
	count := 0
	for _, root := range roots {
		count += drawSubtree(r, root, identity)
	}
	return count
}

// drawSubtree submits the visible meshes under obj, composing world matrices top-down.
func drawSubtree(r renderer.Renderer, obj game_object.GameObject, parentWorld [16]float32) int {
	if !obj.Visible() {
		return 0
	}
	local := obj.LocalMatrix()
	var world [16]float32
	common.Mul4(world[:], parentWorld[:], local[:])

	count := 0
	if obj.Kind() == game_object.KindMesh {
		r.Draw(obj, world)
		count++
	}
	for _, child := range obj.Children() {
		count += drawSubtree(r, child, world)
	}
	return count
}
