package h264dec

import (
	"github.com/ausocean/h264fix/codec/h264/h264dec/bits"
	"github.com/pkg/errors"
)

// Profiles whose SPS carries chroma_format_idc, bit depth and scaling list
// fields ahead of log2_max_frame_num_minus4. These are not walked, so an SPS
// with one of these profiles is never rewritten.
var extendedProfiles = []int{100, 110, 122, 244, 44, 83, 86, 118, 128}

// Macroblock dimension in luma samples.
const mbSize = 16

// SPS describes the part of a sequence parameter set, as defined by section
// 7.3.2.1.1 of ITU-T H.264, that precedes the VUI parameters.
// For semantics see section 7.4.2.1. Only profiles without the chroma format
// extension fields are represented.
type SPS struct {
	// profile_idc and level_idc indicate the profile and level to which the
	// coded video sequence conforms.
	ProfileIDC, LevelIDC uint8

	// The constraint_set0_flag to constraint_set5_flag flags and the two
	// reserved_zero_2bits, as the byte that holds them.
	ConstraintFlags uint8

	// seq_parameter_set_id identifies this sequence parameter set.
	SPSID uint64

	// log2_max_frame_num_minus4 allows for derivation of MaxFrameNum using eq 7-10.
	Log2MaxFrameNumMinus4 uint64

	// pic_order_cnt_type specifies the method to decode picture order count.
	PicOrderCntType uint64

	// log2_max_pic_order_cnt_lsb_minus4 allows for the derivation of
	// MaxPicOrderCntLsb using eq 7-11. Present when PicOrderCntType is 0.
	Log2MaxPicOrderCntLSBMinus4 uint64

	// The following are present when PicOrderCntType is 1.
	DeltaPicOrderAlwaysZeroFlag    bool
	OffsetForNonRefPic             int64
	OffsetForTopToBottomField      int64
	NumRefFramesInPicOrderCntCycle uint64
	OffsetForRefFrame              []int64

	// max_num_ref_frames specifies the max number of short-term and long-term
	// reference frames that may be used for inter prediction.
	MaxNumRefFrames uint64

	GapsInFrameNumValueAllowedFlag bool

	// pic_width_in_mbs_minus1 plus 1 specifies the width of each decoded
	// picture in units of macroblocks. See eq 7-13.
	PicWidthInMBSMinus1 uint64

	// pic_height_in_map_units_minus1 plus 1 specifies the height in slice group
	// map units of a decoded frame or field. See eq 7-16.
	PicHeightInMapUnitsMinus1 uint64

	// frame_mbs_only_flag if 1 every coded picture of the coded video sequence
	// is a coded frame containing only frame macroblocks.
	FrameMBSOnlyFlag bool

	// mb_adaptive_frame_field_flag, present when FrameMBSOnlyFlag is 0.
	MBAdaptiveFrameFieldFlag bool

	Direct8x8InferenceFlag bool

	// frame_cropping_flag if 1 then the frame cropping offsets follow.
	// The offsets are in units of chroma samples horizontally and, for frame
	// coding, chroma rows vertically (4:2:0 only for these profiles).
	FrameCroppingFlag     bool
	FrameCropLeftOffset   uint64
	FrameCropRightOffset  uint64
	FrameCropTopOffset    uint64
	FrameCropBottomOffset uint64

	// vui_parameters_present_flag if 1 the vui_parameters() syntax structure
	// follows. It is not parsed.
	VUIParametersPresentFlag bool
}

// Width returns the width of the output picture in luma samples, after
// cropping.
func (s *SPS) Width() int {
	w := int(s.PicWidthInMBSMinus1+1) * mbSize
	if s.FrameCroppingFlag {
		w -= 2 * int(s.FrameCropLeftOffset+s.FrameCropRightOffset)
	}
	return w
}

// Height returns the height of the output picture in luma samples, after
// cropping.
func (s *SPS) Height() int {
	h := s.frameHeightInMbs() * mbSize
	if s.FrameCroppingFlag {
		h -= s.cropUnitY() * int(s.FrameCropTopOffset+s.FrameCropBottomOffset)
	}
	return h
}

// frameHeightInMbs is FrameHeightInMbs from eq 7-18.
func (s *SPS) frameHeightInMbs() int {
	n := int(s.PicHeightInMapUnitsMinus1 + 1)
	if !s.FrameMBSOnlyFlag {
		n *= 2
	}
	return n
}

// cropUnitY is CropUnitY from eq 7-20 for 4:2:0 chroma.
func (s *SPS) cropUnitY() int {
	if s.FrameMBSOnlyFlag {
		return 2
	}
	return 4
}

// ParseProfileLevel returns the profile_idc and level_idc of the first SPS NAL
// unit in buf. The constraint flags byte between them is skipped.
func ParseProfileLevel(buf []byte) (profileIDC, levelIDC uint8, err error) {
	hdr, err := FindSPS(buf)
	if err != nil {
		return 0, 0, err
	}
	if hdr+3 >= len(buf) {
		return 0, 0, errors.Wrap(ErrMalformed, "SPS too short for level_idc")
	}
	return buf[hdr+1], buf[hdr+3], nil
}

// ParseSPS parses the SPS NAL unit at the start of nal, which must begin with
// a three or four byte start code followed by the NAL unit header. Parsing
// stops at vui_parameters_present_flag. A *ProfileError is returned for
// profiles that carry chroma format extension fields.
func ParseSPS(nal []byte) (*SPS, error) {
	hl, err := spsHeaderLen(nal)
	if err != nil {
		return nil, err
	}
	sps, _, err := walkSPS(bits.NewCursor(nal[hl:]))
	return sps, err
}

// FixCropping rewrites the frame cropping fields of the SPS NAL unit at the
// start of nal so that the output picture is width x height luma samples,
// and returns the new size of the NAL unit in bytes including the start code
// and header. The picture is cropped on the right and bottom.
//
// nal must begin with a three or four byte start code followed by the NAL
// unit header, and must be long enough to hold the rewritten fields; this is
// at most three bytes more than the original SPS.
//
// Everything preceding frame_cropping_flag is left untouched. The flag is set,
// the offsets, vui_parameters_present_flag and the rbsp stop bit are written,
// and the remaining bits of the final byte are zeroed. Bytes beyond the
// returned size are not part of the SPS and are left as they were.
//
// If the SPS has a profile with chroma format extension fields, or has VUI
// parameters, nal is not modified and the returned error matches
// ErrUnsupported. Callers may then carry on with the unmodified SPS and its
// original size.
func FixCropping(nal []byte, width, height int) (int, error) {
	hl, err := spsHeaderLen(nal)
	if err != nil {
		return 0, err
	}

	c := bits.NewCursor(nal[hl:])
	sps, splice, err := walkSPS(c)
	if err != nil {
		return 0, err
	}
	if sps.VUIParametersPresentFlag {
		return 0, ErrVUINotSupported
	}

	right, bottom, err := cropOffsets(sps, width, height)
	if err != nil {
		return 0, err
	}

	// Check that the rewritten fields fit before anything is written.
	need := splice + 1 + UeLen(0) + UeLen(right) + UeLen(0) + UeLen(bottom) + 2
	if need > c.Len() {
		return 0, errors.Wrapf(ErrMalformed, "rewritten SPS needs %d bits, buffer holds %d", need, c.Len())
	}

	err = c.Seek(splice)
	if err != nil {
		return 0, err
	}
	w := newFieldWriter(c)
	w.writeFlag("frame_cropping_flag", true)
	w.writeUe("frame_crop_left_offset", 0)
	w.writeUe("frame_crop_right_offset", right)
	w.writeUe("frame_crop_top_offset", 0)
	w.writeUe("frame_crop_bottom_offset", bottom)
	w.writeFlag("vui_parameters_present_flag", sps.VUIParametersPresentFlag)
	w.writeFlag("rbsp_stop_one_bit", true)
	for !c.ByteAligned() && w.err() == nil {
		w.writeFlag("rbsp_alignment_zero_bit", false)
	}
	if w.err() != nil {
		return 0, w.err()
	}
	return hl + c.Pos()/8, nil
}

// cropOffsets returns frame_crop_right_offset and frame_crop_bottom_offset
// for an output picture of width x height. The offsets are derived from the
// dimensions rounded up to whole macroblocks.
func cropOffsets(sps *SPS, width, height int) (right, bottom uint64, err error) {
	codedWidth := int(sps.PicWidthInMBSMinus1+1) * mbSize
	codedHeight := sps.frameHeightInMbs() * mbSize
	if width <= 0 || height <= 0 || width > codedWidth || height > codedHeight {
		return 0, 0, errors.Wrapf(ErrInvalidDimensions, "%dx%d for coded picture %dx%d", width, height, codedWidth, codedHeight)
	}

	right = uint64(roundUp(width, mbSize)-width) / 2
	bottom = uint64(roundUp(height, mbSize) - height)
	if sps.FrameMBSOnlyFlag {
		bottom /= 2
	} else {
		bottom /= 4
	}
	return right, bottom, nil
}

// walkSPS reads the SPS fields from c in bitstream order up to and including
// vui_parameters_present_flag, and returns them with the bit position of
// frame_cropping_flag.
func walkSPS(c *bits.Cursor) (*SPS, int, error) {
	sps := &SPS{}
	r := newFieldReader(c)

	sps.ProfileIDC = uint8(r.readBits("profile_idc", 8))
	sps.ConstraintFlags = uint8(r.readBits("constraint_set_flags", 8))
	sps.LevelIDC = uint8(r.readBits("level_idc", 8))
	sps.SPSID = r.readUe("seq_parameter_set_id")
	if r.err() != nil {
		return nil, 0, r.err()
	}

	if isInList(extendedProfiles, int(sps.ProfileIDC)) {
		return nil, 0, &ProfileError{ProfileIDC: sps.ProfileIDC}
	}

	sps.Log2MaxFrameNumMinus4 = r.readUe("log2_max_frame_num_minus4")
	sps.PicOrderCntType = r.readUe("pic_order_cnt_type")

	switch sps.PicOrderCntType {
	case 0:
		sps.Log2MaxPicOrderCntLSBMinus4 = r.readUe("log2_max_pic_order_cnt_lsb_minus4")
	case 1:
		sps.DeltaPicOrderAlwaysZeroFlag = r.readFlag("delta_pic_order_always_zero_flag")
		sps.OffsetForNonRefPic = r.readSe("offset_for_non_ref_pic")
		sps.OffsetForTopToBottomField = r.readSe("offset_for_top_to_bottom_field")
		sps.NumRefFramesInPicOrderCntCycle = r.readUe("num_ref_frames_in_pic_order_cnt_cycle")

		// The count is bounded by the remaining bits, as each offset takes at
		// least one, so a corrupt count cannot cause a large allocation.
		if r.err() == nil && sps.NumRefFramesInPicOrderCntCycle > uint64(c.Remaining()) {
			return nil, 0, errors.Wrapf(ErrMalformed, "num_ref_frames_in_pic_order_cnt_cycle %d exceeds remaining bits", sps.NumRefFramesInPicOrderCntCycle)
		}
		for i := uint64(0); i < sps.NumRefFramesInPicOrderCntCycle && r.err() == nil; i++ {
			sps.OffsetForRefFrame = append(sps.OffsetForRefFrame, r.readSe("offset_for_ref_frame"))
		}
	}

	sps.MaxNumRefFrames = r.readUe("max_num_ref_frames")
	sps.GapsInFrameNumValueAllowedFlag = r.readFlag("gaps_in_frame_num_value_allowed_flag")
	sps.PicWidthInMBSMinus1 = r.readUe("pic_width_in_mbs_minus1")
	sps.PicHeightInMapUnitsMinus1 = r.readUe("pic_height_in_map_units_minus1")
	sps.FrameMBSOnlyFlag = r.readFlag("frame_mbs_only_flag")
	if !sps.FrameMBSOnlyFlag {
		sps.MBAdaptiveFrameFieldFlag = r.readFlag("mb_adaptive_frame_field_flag")
	}
	sps.Direct8x8InferenceFlag = r.readFlag("direct_8x8_inference_flag")

	splice := c.Pos()
	sps.FrameCroppingFlag = r.readFlag("frame_cropping_flag")
	if sps.FrameCroppingFlag {
		sps.FrameCropLeftOffset = r.readUe("frame_crop_left_offset")
		sps.FrameCropRightOffset = r.readUe("frame_crop_right_offset")
		sps.FrameCropTopOffset = r.readUe("frame_crop_top_offset")
		sps.FrameCropBottomOffset = r.readUe("frame_crop_bottom_offset")
	}
	sps.VUIParametersPresentFlag = r.readFlag("vui_parameters_present_flag")

	if r.err() != nil {
		return nil, 0, r.err()
	}
	return sps, splice, nil
}

// spsHeaderLen returns the length of the start code and NAL unit header at
// the start of nal, checking that the NAL unit is an SPS.
func spsHeaderLen(nal []byte) (int, error) {
	n := startCodeLen(nal)
	if n == 0 || len(nal) <= n || NALType(nal[n]) != NALTypeSPS {
		return 0, errors.Wrap(ErrNotFound, "buffer does not begin with an SPS NAL unit")
	}
	return n + 1, nil
}

func roundUp(v, m int) int {
	return (v + m - 1) / m * m
}

func isInList(l []int, term int) bool {
	for _, m := range l {
		if m == term {
			return true
		}
	}
	return false
}
