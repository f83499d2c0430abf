package raster

// MaskMode selects how a layer is combined with the pixels below it,
// weighted by a mask pixel m. Without a mask, m is taken as one.
type MaskMode int

const (
	// MaskBlend is the default alpha blend: base + (layer-base)*m.
	MaskBlend MaskMode = iota
	// MaskNoEffect ignores the mask; the layer replaces the base.
	MaskNoEffect
	// MaskInvert blends with the inverted mask: layer + (base-layer)*m.
	MaskInvert
	// MaskAdd adds the masked layer: base + layer*m.
	MaskAdd
	// MaskSubtract subtracts the masked layer: base - layer*m.
	MaskSubtract
	// MaskMultiply blends towards base*layer: base + (base*layer-base)*m.
	MaskMultiply
)

// String returns a string representation of the mask mode.
func (m MaskMode) String() string {
	switch m {
	case MaskBlend:
		return "Blend"
	case MaskNoEffect:
		return "NoEffect"
	case MaskInvert:
		return "Invert"
	case MaskAdd:
		return "Add"
	case MaskSubtract:
		return "Subtract"
	case MaskMultiply:
		return "Multiply"
	default:
		return "Unknown"
	}
}

// composite combines layer over base. masked says whether m holds a mask
// pixel; unknown modes fall back to MaskBlend.
func composite[T Pixel[T]](base, layer, m T, masked bool, mode MaskMode) T {
	if !masked {
		switch mode {
		case MaskInvert:
			return base
		case MaskAdd:
			return base.Add(layer)
		case MaskSubtract:
			return base.Sub(layer)
		case MaskMultiply:
			return base.Mul(layer)
		default:
			return layer
		}
	}

	switch mode {
	case MaskNoEffect:
		return layer
	case MaskInvert:
		return layer.Add(base.Sub(layer).Mul(m))
	case MaskAdd:
		return base.Add(layer.Mul(m))
	case MaskSubtract:
		return base.Sub(layer.Mul(m))
	case MaskMultiply:
		return base.Add(base.Mul(layer).Sub(base).Mul(m))
	default:
		return base.Add(layer.Sub(base).Mul(m))
	}
}
