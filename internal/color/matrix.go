package color

// mat3 is a row-major 3x3 matrix.
type mat3 [3][3]float64

func (m mat3) mulVec(v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// whiteD50 is the D50 reference white from its CIE xy chromaticity, Y
// normalized to 1.
var whiteD50 = [3]float64{0.3457 / 0.3585, 1.0, (1.0 - 0.3457 - 0.3585) / 0.3585}

// Bradford chromatic adaptation between D65 and D50.
var (
	d65ToD50 = mat3{
		{1.0479297925449969, 0.022946870601609652, -0.05019226628920524},
		{0.02962780877005599, 0.9904344267538799, -0.017073799063418826},
		{-0.009243040646204504, 0.015055191490298152, 0.7518742814281371},
	}
	d50ToD65 = mat3{
		{0.955473421488075, -0.02309845494876471, 0.06325924320057072},
		{-0.0283697093338637, 1.0099953980813041, 0.021041441191917323},
		{0.012314014864481998, -0.020507649298898964, 1.330365926242124},
	}
)

// Linear RGB <-> XYZ matrices for the wide-gamut RGB spaces. sRGB uses the
// go-colorful matrices directly.
var (
	p3ToXYZ = mat3{
		{0.4865709486482162, 0.26566769316909306, 0.1982172852343625},
		{0.2289745640697488, 0.6917385218365064, 0.079286914093745},
		{0.0, 0.04511338185890264, 1.043944368900976},
	}
	xyzToP3 = mat3{
		{2.493496911941425, -0.9313836179191239, -0.40271078445071684},
		{-0.8294889695615747, 1.7626640603183463, 0.023624685841943577},
		{0.03584583024378447, -0.07617238926804182, 0.9568845240076872},
	}

	a98ToXYZ = mat3{
		{0.5766690429101305, 0.1855582379065463, 0.1882286462349947},
		{0.29734497525053605, 0.6273635662554661, 0.07529145849399788},
		{0.02703136138641234, 0.07068885253582723, 0.9913375368376388},
	}
	xyzToA98 = mat3{
		{2.0415879038107465, -0.5650069742788596, -0.34473135077832956},
		{-0.9692436362808795, 1.8759675015077202, 0.04155505740717557},
		{0.013444280632031142, -0.11836239223101838, 1.0151749943912054},
	}

	rec2020ToXYZ = mat3{
		{0.6369580483012914, 0.14461690358620832, 0.1688809751641721},
		{0.2627002120112671, 0.6779980715188708, 0.05930171646986196},
		{0.0, 0.028072693049087428, 1.060985057710791},
	}
	xyzToRec2020 = mat3{
		{1.716651187971268, -0.355670783776392, -0.253366281373660},
		{-0.666684351832489, 1.616481236634939, 0.0157685458139111},
		{0.017639857445311, -0.042770613257809, 0.942103121235474},
	}

	// ProPhoto is defined against D50.
	prophotoToXYZD50 = mat3{
		{0.7977604896723027, 0.13518583717574031, 0.0313493495815248},
		{0.2880711282292934, 0.7118432178101014, 0.00008565396060525902},
		{0.0, 0.0, 0.8251046025104601},
	}
	xyzD50ToProphoto = mat3{
		{1.3457989731028281, -0.25558010007997534, -0.05110628506753401},
		{-0.5446224939028347, 1.5082327413132781, 0.02053603239147973},
		{0.0, 0.0, 1.2119675456389454},
	}
)
