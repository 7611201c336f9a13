package wgpu

import "github.com/gogpu/gpucontext"

// DeviceHandle is an alias for gpucontext.DeviceProvider, giving this
// backend a local name for the interface host applications (e.g. a gogpu
// window) implement to share their GPU device.
//
// Key principle: the backend RECEIVES a shared device from the host, it does
// not take ownership. Close never destroys a shared device.
type DeviceHandle = gpucontext.DeviceProvider

// UseSharedDevice adopts the host application's GPU device. The provider
// must also implement the HalProvider convention — HalDevice() any and
// HalQueue() any returning wgpu/hal types — which gogpu providers do.
//
// On success the backend is ready without ever calling Init, and its
// pipelines are rebuilt against the shared device on the next evaluation.
func (b *Backend) UseSharedDevice(h DeviceHandle) error {
	return b.SetDeviceProvider(h)
}
