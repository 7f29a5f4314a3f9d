// This file is part of asfv1.
//
// Package fv1 models the Spin Semiconductor FV-1 audio DSP target: its
// 32-bit instruction word, the six signed fixed-point formats used by
// instruction operands, the 25-mnemonic opcode space, the 128-word
// program buffer, and the two on-disk encodings (Intel HEX and raw
// binary) that a program is serialized to.
//
// Mnemonics:
//
//	opcode	asm	operands			description
//	------	---	----------------------		----------------------------------
//	0x00	rda	ADDR, MULT			read delay RAM, scale and accumulate
//	0x01	rmpa	MULT				ramp-addressed delay RAM read
//	0x02	wra	ADDR, MULT			write delay RAM, scale ACC
//	0x03	wrap	ADDR, MULT			write delay RAM with all-pass feedback
//	0x04	rdax	REG, MULT			read register, scale and accumulate
//	0x05	rdfx	REG, MULT			read register, scale from PACC
//	0x06	wrax	REG, MULT			write ACC to register, scale into ACC
//	0x07	wrhx	REG, MULT			write ACC to register, scale from PACC
//	0x08	wrlx	REG, MULT			write ACC to register, scale toward PACC
//	0x09	maxx	REG, MULT			ACC = max(|ACC|, |REG * MULT|)
//	0x0A	mulx	REG				ACC = ACC * REG
//	0x0B	log	MULT, OFFSET			ACC = log2(|ACC|) * MULT + OFFSET
//	0x0C	exp	MULT, OFFSET			ACC = exp2(ACC) * MULT + OFFSET
//	0x0D	sof	MULT, OFFSET			ACC = ACC * MULT + OFFSET
//	0x0E	and	VAL				ACC = ACC & VAL
//	0x0F	or	VAL				ACC = ACC | VAL
//	0x10	xor	VAL				ACC = ACC ^ VAL
//	0x11	skp	COND, OFFSET			skip OFFSET instructions if COND
//	0x12	wlds	LFO, FREQ, AMP			load sine LFO
//	0x12	wldr	LFO, FREQ, AMP			load ramp LFO
//	0x13	jam	LFO				reset ramp LFO
//	0x14	cho	TYPE, LFO, FLAGS, ADDR		LFO-conditioned delay access
//	--	raw	U32				verbatim 32-bit word
//
// Aliases: ldax REG = rdfx REG,0; clr = and 0; not = xor 0xffffff; absa
// = maxx 0,0; nop = skp 0,0; jmp OFF = skp 0,OFF.
package fv1
