package regdb

// Built-in register tables. These cover the registers the decoder
// renders by name and the ones the reconstruction engine reads; offsets
// are dword indices matching the kernel devcoredump layout.

var a6xxDB = newDatabase("A6XX", map[uint32]*RegInfo{
	0x0210: {Name: "RBBM_STATUS", Fields: []Field{
		{Name: "GPU_BUSY_IGN_AHB", Lo: 23, Hi: 23},
		{Name: "GPU_BUSY_IGN_AHB_CP", Lo: 22, Hi: 22},
		{Name: "HLSQ_BUSY", Lo: 21, Hi: 21},
		{Name: "VSC_BUSY", Lo: 20, Hi: 20},
		{Name: "TPL1_BUSY", Lo: 19, Hi: 19},
		{Name: "SP_BUSY", Lo: 18, Hi: 18},
		{Name: "UCHE_BUSY", Lo: 17, Hi: 17},
		{Name: "VPC_BUSY", Lo: 16, Hi: 16},
		{Name: "CP_BUSY", Lo: 6, Hi: 6},
		{Name: "GFX_DBGC_BUSY", Lo: 5, Hi: 5},
	}},
	0x0211: {Name: "RBBM_STATUS1"},
	0x0212: {Name: "RBBM_STATUS2"},
	0x0213: {Name: "RBBM_STATUS3"},
	0x0800: {Name: "CP_RB_BASE"},
	0x0801: {Name: "CP_RB_BASE_HI"},
	0x0802: {Name: "CP_RB_CNTL", Fields: []Field{
		{Name: "BUFSZ", Lo: 0, Hi: 5},
		{Name: "BLKSZ", Lo: 8, Hi: 13},
		{Name: "NO_UPDATE", Lo: 27, Hi: 27},
	}},
	0x0806: {Name: "CP_RB_RPTR"},
	0x0807: {Name: "CP_RB_WPTR"},
	0x0808: {Name: "CP_SQE_CNTL"},
	0x0821: {Name: "CP_HW_FAULT"},
	0x0823: {Name: "CP_INTERRUPT_STATUS"},
	0x0824: {Name: "CP_PROTECT_STATUS"},
	0x0830: {Name: "CP_SQE_INSTR_BASE"},
	0x0831: {Name: "CP_SQE_INSTR_BASE_HI"},
	0x0928: {Name: "CP_IB1_BASE"},
	0x0929: {Name: "CP_IB1_BASE_HI"},
	0x092a: {Name: "CP_IB1_REM_SIZE"},
	0x092b: {Name: "CP_IB2_BASE"},
	0x092c: {Name: "CP_IB2_BASE_HI"},
	0x092d: {Name: "CP_IB2_REM_SIZE"},
	0x0949: {Name: "CP_CSQ_IB1_STAT", Fields: []Field{
		{Name: "WPTR", Lo: 16, Hi: 31},
		{Name: "RPTR", Lo: 0, Hi: 15},
	}},
	0x094a: {Name: "CP_CSQ_IB2_STAT", Fields: []Field{
		{Name: "WPTR", Lo: 16, Hi: 31},
		{Name: "RPTR", Lo: 0, Hi: 15},
	}},
})

var a5xxDB = newDatabase("A5XX", map[uint32]*RegInfo{
	0x04f5: {Name: "RBBM_STATUS"},
	0x0800: {Name: "CP_RB_BASE"},
	0x0801: {Name: "CP_RB_BASE_HI"},
	0x0802: {Name: "CP_RB_CNTL"},
	0x0806: {Name: "CP_RB_RPTR"},
	0x0807: {Name: "CP_RB_WPTR"},
	0x0b1a: {Name: "CP_HW_FAULT"},
	0x0b1f: {Name: "CP_IB1_BASE"},
	0x0b20: {Name: "CP_IB1_BASE_HI"},
	0x0b21: {Name: "CP_IB1_REM_SIZE"},
	0x0b22: {Name: "CP_IB2_BASE"},
	0x0b23: {Name: "CP_IB2_BASE_HI"},
	0x0b24: {Name: "CP_IB2_REM_SIZE"},
})

// Pre-a5xx families share one layout with 32-bit registers.
var axxxDB = newDatabase("AXXX", map[uint32]*RegInfo{
	0x01c0: {Name: "CP_RB_BASE"},
	0x01c1: {Name: "CP_RB_CNTL"},
	0x01c4: {Name: "CP_RB_RPTR"},
	0x01c5: {Name: "CP_RB_WPTR"},
	0x045e: {Name: "CP_STAT"},
	0x0458: {Name: "CP_IB1_BASE"},
	0x0459: {Name: "CP_IB1_REM_SIZE"},
	0x045a: {Name: "CP_IB2_BASE"},
	0x045b: {Name: "CP_IB2_REM_SIZE"},
})

var a6xxGmuDB = newDatabase("A6XX_GMU", map[uint32]*RegInfo{
	0x4c00: {Name: "GMU_GX_SPTPRAC_POWER_CONTROL"},
	0x50c0: {Name: "GMU_CM3_CFG"},
	0x50c1: {Name: "GMU_CM3_FW_INIT_RESULT"},
	0x50d0: {Name: "GMU_CM3_SYSRESET"},
	0x50f0: {Name: "GMU_CM3_FW_BUSY"},
	0x5157: {Name: "GMU_ALWAYS_ON_COUNTER_L"},
	0x5158: {Name: "GMU_ALWAYS_ON_COUNTER_H"},
	0x51f0: {Name: "GMU_GENERAL_7"},
	0x5023: {Name: "GMU_AO_HOST_INTERRUPT_STATUS"},
	0x5024: {Name: "GMU_AO_HOST_INTERRUPT_MASK"},
	0x5084: {Name: "GMU_GMU2HOST_INTR_INFO"},
	0x5086: {Name: "GMU_GMU2HOST_INTR_MASK"},
})
