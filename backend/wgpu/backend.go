package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/distfield"
	"github.com/gogpu/distfield/shader"
)

// fenceTimeout bounds the wait for a dispatch; no GPU operation blocks
// indefinitely.
const fenceTimeout = 5 * time.Second

// cellSize is the byte size of one output Cell record (f32 + 3x u32).
const cellSize = 16

// paramsSize is the byte size of the dispatch params uniform
// (origin vec2<f32> + size vec2<u32>).
const paramsSize = 16

// Backend implements distfield.Backend on gogpu/wgpu HAL compute pipelines.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// Pipeline specialized for the current signature. The shader is fully
	// baked, so a signature change means recompilation.
	pipeSig    distfield.Signature
	hasPipe    bool
	shaderMod  hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
	withPal    bool

	ready          bool
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

// Compile-time interface check.
var _ distfield.Backend = (*Backend)(nil)

// New returns an uninitialized backend. The owning session calls Init.
func New() *Backend { return &Backend{} }

// Name returns the backend name.
func (b *Backend) Name() string { return "wgpu-compute" }

// Init acquires a Vulkan instance, adapter, device and queue. On failure the
// backend stays unready and the error propagates to the session, which logs
// the downgrade and keeps evaluating on the CPU.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		return nil
	}

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("wgpu: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("wgpu: open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.ready = true
	distfield.Logger().Info("wgpu: GPU backend initialized", "adapter", selected.Info.Name)
	return nil
}

// SetDeviceProvider switches the backend to a shared GPU device from an
// external provider (e.g. a gogpu window). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue —
// the gpucontext HalProvider convention; see device.go.
func (b *Backend) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.destroyPipelineLocked()
	if !b.externalDevice && b.device != nil {
		b.device.Destroy()
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}

	b.device = device
	b.queue = queue
	b.externalDevice = true
	b.ready = true
	distfield.Logger().Info("wgpu: switched to shared GPU device")
	return nil
}

// Close releases GPU resources. Shared devices are not destroyed.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.destroyPipelineLocked()
	if !b.externalDevice {
		if b.device != nil {
			b.device.Destroy()
			b.device = nil
		}
		if b.instance != nil {
			b.instance.Destroy()
			b.instance = nil
		}
	} else {
		b.device = nil
		b.instance = nil
	}
	b.queue = nil
	b.ready = false
	b.externalDevice = false
}

// EvaluateRegion dispatches the full bounds as one compute pass and reads
// back the Cell records. Any failure returns an error so the session can
// fall back to CPU evaluation.
func (b *Backend) EvaluateRegion(curve *distfield.Curve, p distfield.Profile, palette *distfield.Palette, panX, panY float64, bounds distfield.Bounds) ([]distfield.Cell, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return nil, distfield.ErrFallbackToCPU
	}

	sig := distfield.ComputeSignature(curve, p, palette, panX, panY)
	if err := b.ensurePipelineLocked(sig, p, curve, palette, panX, panY); err != nil {
		return nil, err
	}

	return b.dispatchLocked(curve, palette, bounds)
}

// ensurePipelineLocked (re)builds the baked pipeline when the signature
// changed. Generated WGSL is validated through naga before the device sees
// it, so malformed source surfaces as a generation error here.
func (b *Backend) ensurePipelineLocked(sig distfield.Signature, p distfield.Profile, curve *distfield.Curve, palette *distfield.Palette, panX, panY float64) error {
	if b.hasPipe && b.pipeSig == sig {
		return nil
	}
	b.destroyPipelineLocked()

	paletteSize := 0
	if palette != nil {
		paletteSize = len(palette.Colors)
	}
	src, err := shader.Generate(p, shader.Binding{
		CurveWidth:  curve.Width,
		PaletteSize: paletteSize,
		PanX:        panX,
		PanY:        panY,
	}, shader.WGSL)
	if err != nil {
		return fmt.Errorf("wgpu: generate shader: %w", err)
	}
	if err := shader.ValidateWGSL(src); err != nil {
		return err
	}

	mod, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "distfield_eval",
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return fmt.Errorf("wgpu: compile shader: %w", err)
	}
	b.shaderMod = mod

	entries := []gputypes.BindGroupLayoutEntry{
		{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
		{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
	}
	if paletteSize > 0 {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding: 2, Visibility: gputypes.ShaderStageCompute,
			Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		})
	}
	entries = append(entries, gputypes.BindGroupLayoutEntry{
		Binding: 3, Visibility: gputypes.ShaderStageCompute,
		Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
	})

	bindLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "distfield_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	b.bindLayout = bindLayout

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "distfield_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout

	pipeline, err := b.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "distfield_pipeline", Layout: pipeLayout,
		Compute: hal.ComputeState{Module: mod, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create compute pipeline: %w", err)
	}
	b.pipeline = pipeline

	b.pipeSig = sig
	b.hasPipe = true
	b.withPal = paletteSize > 0
	return nil
}

func (b *Backend) destroyPipelineLocked() {
	if b.device == nil {
		b.hasPipe = false
		return
	}
	if b.pipeline != nil {
		b.device.DestroyComputePipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.pipeLayout != nil {
		b.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.bindLayout != nil {
		b.device.DestroyBindGroupLayout(b.bindLayout)
		b.bindLayout = nil
	}
	if b.shaderMod != nil {
		b.device.DestroyShaderModule(b.shaderMod)
		b.shaderMod = nil
	}
	b.hasPipe = false
}

// dispatchLocked uploads inputs, runs one compute pass over 16x16 tiles,
// and reads the Cell records back through a staging buffer.
func (b *Backend) dispatchLocked(curve *distfield.Curve, palette *distfield.Palette, bounds distfield.Bounds) ([]distfield.Cell, error) {
	w, h := uint32(bounds.Width()), uint32(bounds.Height())
	outSize := uint64(w) * uint64(h) * cellSize

	paramsBuf, err := b.createAndUpload("distfield_params",
		packParams(bounds, w, h),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	defer b.device.DestroyBuffer(paramsBuf)

	curveBuf, err := b.createAndUpload("distfield_curve",
		packBytesAsU32(curve.Data),
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	defer b.device.DestroyBuffer(curveBuf)

	var paletteBuf hal.Buffer
	if b.withPal {
		paletteBuf, err = b.createAndUpload("distfield_palette",
			packPalette(palette),
			gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		defer b.device.DestroyBuffer(paletteBuf)
	}

	outBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "distfield_cells", Size: outSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create output buffer: %w", err)
	}
	defer b.device.DestroyBuffer(outBuf)

	stagingBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "distfield_staging", Size: outSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(stagingBuf)

	bgEntries := []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: paramsSize}},
		{Binding: 1, Resource: gputypes.BufferBinding{Buffer: curveBuf.NativeHandle(), Offset: 0, Size: uint64(curve.Width) * 4}},
	}
	if b.withPal {
		bgEntries = append(bgEntries, gputypes.BindGroupEntry{
			Binding: 2, Resource: gputypes.BufferBinding{Buffer: paletteBuf.NativeHandle(), Offset: 0, Size: uint64(len(palette.Colors)) * 4},
		})
	}
	bgEntries = append(bgEntries, gputypes.BindGroupEntry{
		Binding: 3, Resource: gputypes.BufferBinding{Buffer: outBuf.NativeHandle(), Offset: 0, Size: outSize},
	})

	bindGroup, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "distfield_bind", Layout: b.bindLayout,
		Entries: bgEntries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create bind group: %w", err)
	}
	defer b.device.DestroyBindGroup(bindGroup)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "distfield_encoder"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("distfield_eval"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "distfield_pass"})
	pass.SetPipeline(b.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch((w+15)/16, (h+15)/16, 1)
	pass.End()

	encoder.CopyBufferToBuffer(outBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: outSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)
	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return nil, fmt.Errorf("wgpu: wait for GPU: %w", err)
	}
	if !fenceOK {
		return nil, fmt.Errorf("wgpu: GPU timed out after %v", fenceTimeout)
	}

	readback := make([]byte, outSize)
	if err := b.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("wgpu: readback: %w", err)
	}
	return unpackCells(readback, int(w)*int(h)), nil
}

func (b *Backend) createAndUpload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label, Size: uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s buffer: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// packParams serializes the dispatch uniform: grid origin as vec2<f32>,
// grid size as vec2<u32>.
func packParams(bounds distfield.Bounds, w, h uint32) []byte {
	out := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(out[0:], math.Float32bits(float32(bounds.MinX)))
	binary.LittleEndian.PutUint32(out[4:], math.Float32bits(float32(bounds.MinY)))
	binary.LittleEndian.PutUint32(out[8:], w)
	binary.LittleEndian.PutUint32(out[12:], h)
	return out
}

// packBytesAsU32 widens curve bytes to the u32 array layout the shader reads.
func packBytesAsU32(data []byte) []byte {
	out := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}

// packPalette serializes palette colors as packed little-endian RGBA words.
func packPalette(p *distfield.Palette) []byte {
	out := make([]byte, len(p.Colors)*4)
	for i, c := range p.Colors {
		binary.LittleEndian.PutUint32(out[i*4:], c.Packed())
	}
	return out
}

// unpackCells decodes the readback buffer into Cell records.
func unpackCells(raw []byte, n int) []distfield.Cell {
	cells := make([]distfield.Cell, n)
	for i := 0; i < n; i++ {
		off := i * cellSize
		cells[i] = distfield.Cell{
			Dist:  math.Float32frombits(binary.LittleEndian.Uint32(raw[off:])),
			Index: binary.LittleEndian.Uint32(raw[off+4:]),
			Value: binary.LittleEndian.Uint32(raw[off+8:]),
			Color: binary.LittleEndian.Uint32(raw[off+12:]),
		}
	}
	return cells
}
