package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/cogentcore/webgpu/wgpu"
)

// initialInstanceCapacity is the number of GPUInstance records the storage buffer starts with.
const initialInstanceCapacity = 256

// primitiveBuffers holds the uploaded geometry for one unit primitive.
type primitiveBuffers struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	// Mesh pipeline: one storage buffer of GPUInstance records indexed by instance_index.
	meshPipeline        *wgpu.RenderPipeline
	instanceLayout      *wgpu.BindGroupLayout
	instanceBuffer      *wgpu.Buffer
	instanceBindGroup   *wgpu.BindGroup
	instanceCapacity    int
	instanceStaging     []byte
	primitives          map[game_object.Primitive]primitiveBuffers
	overlayPipeline     *wgpu.RenderPipeline
	overlayParamsBuffer *wgpu.Buffer
	overlayBindGroup    *wgpu.BindGroup

	// Frame state
	frameEncoder *wgpu.CommandEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) RendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
		primitives:  make(map[game_object.Primitive]primitiveBuffers),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	if err := w.initPrimitiveBuffers(); err != nil {
		panic(err)
	}
	return w
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
	}
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard // Don't store MSAA data, just resolve
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          b.msaaTextureView, // nil when MSAA is off; set in Submit
				ResolveTarget: nil,               // set per-frame when MSAA is on
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	// Pipelines depend on the surface format, which is only known after the first configure.
	if b.meshPipeline == nil {
		if err := b.initMeshPipeline(); err != nil {
			panic(err)
		}
		if err := b.initOverlayPipeline(); err != nil {
			panic(err)
		}
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A held surface texture means the previous frame was never presented;
	// acquiring another one fails validation in wgpu-native.
	if b.frameSurface != nil {
		return ErrFrameInFlight
	}
	if b.renderPassDescriptor == nil {
		return errors.New("surface not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.frameEncoder = encoder
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) Submit(frame FrameDescriptor) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return
	}

	items := make([]DrawItem, len(frame.Items))
	copy(items, frame.Items)
	// grouping by primitive lets each run share one DrawIndexed call
	sort.SliceStable(items, func(i, j int) bool { return items[i].Primitive < items[j].Primitive })

	if err := b.ensureInstanceCapacity(len(items)); err != nil {
		items = items[:b.instanceCapacity]
	}
	b.writeInstances(items, frame.ViewProjection)

	if frame.OverlayOpacity > 0 {
		params := GPUOverlayParams{OverlayColor: [4]float32{0, 0, 0, frame.OverlayOpacity}}
		b.queue.WriteBuffer(b.overlayParamsBuffer, 0, params.Marshal())
	}

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	attachment.ClearValue = wgpu.Color{
		R: float64(frame.ClearColor[0]),
		G: float64(frame.ClearColor[1]),
		B: float64(frame.ClearColor[2]),
		A: 1.0,
	}
	if b.sampleCount > 1 {
		attachment.ResolveTarget = b.frameView
	} else {
		attachment.View = b.frameView
	}
	pass := b.frameEncoder.BeginRenderPass(b.renderPassDescriptor)

	if len(items) > 0 {
		pass.SetPipeline(b.meshPipeline)
		pass.SetBindGroup(0, b.instanceBindGroup, nil)
		for start := 0; start < len(items); {
			end := start
			for end < len(items) && items[end].Primitive == items[start].Primitive {
				end++
			}
			if mesh, ok := b.primitives[items[start].Primitive]; ok {
				pass.SetVertexBuffer(0, mesh.vertexBuffer, 0, wgpu.WholeSize)
				pass.SetIndexBuffer(mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
				pass.DrawIndexed(mesh.indexCount, uint32(end-start), 0, 0, uint32(start))
			}
			start = end
		}
	}

	if frame.OverlayOpacity > 0 {
		pass.SetPipeline(b.overlayPipeline)
		pass.SetBindGroup(0, b.overlayBindGroup, nil)
		pass.Draw(3, 1, 0, 0)
	}

	pass.End()
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, mesh := range b.primitives {
		mesh.vertexBuffer.Release()
		mesh.indexBuffer.Release()
	}
	b.primitives = nil
	if b.instanceBindGroup != nil {
		b.instanceBindGroup.Release()
	}
	if b.instanceBuffer != nil {
		b.instanceBuffer.Release()
	}
	if b.instanceLayout != nil {
		b.instanceLayout.Release()
	}
	if b.meshPipeline != nil {
		b.meshPipeline.Release()
	}
	if b.overlayBindGroup != nil {
		b.overlayBindGroup.Release()
	}
	if b.overlayParamsBuffer != nil {
		b.overlayParamsBuffer.Release()
	}
	if b.overlayPipeline != nil {
		b.overlayPipeline.Release()
	}
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

// initPrimitiveBuffers uploads unit geometry for every drawable primitive.
func (b *wgpuRendererBackendImpl) initPrimitiveBuffers() error {
	for _, p := range []game_object.Primitive{
		game_object.PrimitiveBox,
		game_object.PrimitiveSphere,
		game_object.PrimitiveCylinder,
		game_object.PrimitiveCone,
		game_object.PrimitivePlane,
	} {
		mesh := buildPrimitiveMesh(p)
		vertexData := common.SliceToBytes(mesh.vertices)
		indexData := common.SliceToBytes(mesh.indices)

		vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: p.String() + " Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(vb, 0, vertexData)

		ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: p.String() + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(ib, 0, indexData)

		b.primitives[p] = primitiveBuffers{vertexBuffer: vb, indexBuffer: ib, indexCount: uint32(len(mesh.indices))}
	}
	return nil
}

// initMeshPipeline creates the lit mesh pipeline and its instance storage buffer.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) initMeshPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Mesh Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: meshShaderSource,
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	b.instanceLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Instance Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: gpuInstanceSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create instance bind group layout: %w", err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Mesh Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.instanceLayout},
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	b.meshPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Mesh Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: meshVertexStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			// interiors are viewed from inside boxes, so back faces must render
			CullMode: wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	return b.ensureInstanceCapacity(initialInstanceCapacity)
}

// initOverlayPipeline creates the full-screen fade pipeline.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) initOverlayPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Overlay Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: overlayShaderSource,
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Overlay Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 16,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	defer layout.Release()

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Overlay Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	blend := wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	}
	b.overlayPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Overlay Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					Blend:     &wgpu.BlendState{Color: blend, Alpha: blend},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: false,
			DepthCompare:      wgpu.CompareFunctionAlways,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	b.overlayParamsBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Overlay Params Buffer",
		Size:  16,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.overlayBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Overlay Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.overlayParamsBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	return err
}

// ensureInstanceCapacity grows the instance storage buffer by doubling until it holds n records.
// The bind group is recreated whenever the buffer changes.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) ensureInstanceCapacity(n int) error {
	if n <= b.instanceCapacity && b.instanceBuffer != nil {
		return nil
	}
	capacity := b.instanceCapacity
	if capacity == 0 {
		capacity = initialInstanceCapacity
	}
	for capacity < n {
		capacity *= 2
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Instance Buffer",
		Size:  uint64(capacity * gpuInstanceSize),
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Instance Bind Group",
		Layout: b.instanceLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		buf.Release()
		return err
	}

	if b.instanceBindGroup != nil {
		b.instanceBindGroup.Release()
	}
	if b.instanceBuffer != nil {
		b.instanceBuffer.Release()
	}
	b.instanceBuffer = buf
	b.instanceBindGroup = bindGroup
	b.instanceCapacity = capacity
	b.instanceStaging = make([]byte, capacity*gpuInstanceSize)
	return nil
}

// writeInstances uploads one GPUInstance per item.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) writeInstances(items []DrawItem, viewProjection [16]float32) {
	if len(items) == 0 {
		return
	}
	var inst GPUInstance
	for i, item := range items {
		common.Mul4(inst.MVP[:], viewProjection[:], item.Model[:])
		inst.Model = item.Model
		inst.Color = [3]float32(item.Color)
		inst.Emissive = item.Emissive
		inst.MarshalInto(b.instanceStaging[i*gpuInstanceSize:])
	}
	b.queue.WriteBuffer(b.instanceBuffer, 0, b.instanceStaging[:len(items)*gpuInstanceSize])
}
