package v4front

import "github.com/V4-project/V4-front/opcode"

// controlWord recognizes one of the structured control-flow words and
// lowers it against g.ctrl. It reports handled=false for any token
// that isn't one of these, letting the caller fall through to the next
// dispatch tier.
func (g *generator) controlWord(folded string) (handled bool, err error) {
	switch folded {
	case "IF":
		return true, g.doIf()
	case "ELSE":
		return true, g.doElse()
	case "THEN":
		return true, g.doThen()
	case "BEGIN":
		return true, g.doBegin()
	case "UNTIL":
		return true, g.doUntil()
	case "WHILE":
		return true, g.doWhile()
	case "REPEAT":
		return true, g.doRepeat()
	case "AGAIN":
		return true, g.doAgain()
	case "DO":
		return true, g.doDo()
	case "LOOP":
		return true, g.doLoop(false)
	case "+LOOP":
		return true, g.doLoop(true)
	case "LEAVE":
		return true, g.doLeave()
	case "EXIT":
		return true, g.doExit()
	}
	return false, nil
}

func (g *generator) doIf() error {
	cur := g.cursor()
	emitOp(cur, opcode.JZ)
	jz := emitRel16Placeholder(cur)
	g.trace.Event("push IF frame, JZ patch site @%d", jz)
	return g.ctrl.push(controlFrame{kind: frameIf, jzPatch: jz})
}

func (g *generator) doElse() error {
	top := g.ctrl.top()
	if top == nil || top.kind != frameIf {
		return errf(ElseWithoutIf, "ELSE without a matching IF")
	}
	if top.hasElse {
		return errf(DuplicateElse, "ELSE already seen for this IF")
	}
	frame := g.ctrl.pop()
	g.trace.Event("pop IF frame for ELSE")

	cur := g.cursor()
	emitOp(cur, opcode.JMP)
	jmp := emitRel16Placeholder(cur)
	patchRel16(cur, frame.jzPatch, cur.Here())
	g.trace.Event("patch JZ @%d -> %d", frame.jzPatch, cur.Here())

	frame.jmpPatch = jmp
	frame.hasElse = true
	g.trace.Event("push ELSE frame, JMP patch site @%d", jmp)
	return g.ctrl.push(frame)
}

func (g *generator) doThen() error {
	top := g.ctrl.top()
	if top == nil || top.kind != frameIf {
		return errf(ThenWithoutIf, "THEN without a matching IF")
	}
	frame := g.ctrl.pop()
	g.trace.Event("pop IF frame for THEN")
	cur := g.cursor()
	if frame.hasElse {
		patchRel16(cur, frame.jmpPatch, cur.Here())
		g.trace.Event("patch JMP @%d -> %d", frame.jmpPatch, cur.Here())
	} else {
		patchRel16(cur, frame.jzPatch, cur.Here())
		g.trace.Event("patch JZ @%d -> %d", frame.jzPatch, cur.Here())
	}
	return nil
}

func (g *generator) doBegin() error {
	pc := g.cursor().Here()
	g.trace.Event("push BEGIN frame at pc %d", pc)
	return g.ctrl.push(controlFrame{kind: frameBegin, beginPC: pc})
}

func (g *generator) doUntil() error {
	top := g.ctrl.top()
	if top == nil || top.kind != frameBegin {
		return errf(UntilWithoutBegin, "UNTIL without a matching BEGIN")
	}
	if top.hasWhile {
		return errf(UntilAfterWhile, "UNTIL cannot close a BEGIN...WHILE...REPEAT")
	}
	frame := g.ctrl.pop()
	g.trace.Event("pop BEGIN frame for UNTIL")
	cur := g.cursor()
	emitOp(cur, opcode.JZ)
	back := emitRel16Placeholder(cur)
	patchRel16(cur, back, frame.beginPC)
	g.trace.Event("patch JZ @%d -> %d", back, frame.beginPC)
	return nil
}

func (g *generator) doWhile() error {
	top := g.ctrl.top()
	if top == nil || top.kind != frameBegin {
		return errf(WhileWithoutBegin, "WHILE without a matching BEGIN")
	}
	if top.hasWhile {
		return errf(DuplicateWhile, "WHILE already seen for this BEGIN")
	}
	frame := g.ctrl.pop()
	g.trace.Event("pop BEGIN frame for WHILE")
	cur := g.cursor()
	emitOp(cur, opcode.JZ)
	frame.whilePatch = emitRel16Placeholder(cur)
	frame.hasWhile = true
	g.trace.Event("push BEGIN/WHILE frame, JZ patch site @%d", frame.whilePatch)
	return g.ctrl.push(frame)
}

func (g *generator) doRepeat() error {
	top := g.ctrl.top()
	if top == nil || top.kind != frameBegin {
		return errf(RepeatWithoutBegin, "REPEAT without a matching BEGIN")
	}
	if !top.hasWhile {
		return errf(RepeatWithoutWhile, "REPEAT without a preceding WHILE")
	}
	frame := g.ctrl.pop()
	g.trace.Event("pop BEGIN/WHILE frame for REPEAT")
	cur := g.cursor()
	emitOp(cur, opcode.JMP)
	back := emitRel16Placeholder(cur)
	patchRel16(cur, back, frame.beginPC)
	g.trace.Event("patch JMP @%d -> %d", back, frame.beginPC)
	patchRel16(cur, frame.whilePatch, cur.Here())
	g.trace.Event("patch JZ @%d -> %d", frame.whilePatch, cur.Here())
	return nil
}

func (g *generator) doAgain() error {
	top := g.ctrl.top()
	if top == nil || top.kind != frameBegin {
		return errf(AgainWithoutBegin, "AGAIN without a matching BEGIN")
	}
	if top.hasWhile {
		return errf(AgainAfterWhile, "AGAIN cannot close a BEGIN...WHILE...REPEAT")
	}
	frame := g.ctrl.pop()
	g.trace.Event("pop BEGIN frame for AGAIN")
	cur := g.cursor()
	emitOp(cur, opcode.JMP)
	back := emitRel16Placeholder(cur)
	patchRel16(cur, back, frame.beginPC)
	g.trace.Event("patch JMP @%d -> %d", back, frame.beginPC)
	return nil
}

// doDo lowers "limit index DO" by moving both onto the return stack,
// index on top, so that R@ (and the generalized I/J/K walk) sees the
// running index first.
func (g *generator) doDo() error {
	cur := g.cursor()
	emitOp(cur, opcode.SWAP)
	emitOp(cur, opcode.TOR)
	emitOp(cur, opcode.TOR)
	pc := cur.Here()
	g.trace.Event("push DO frame at pc %d", pc)
	return g.ctrl.push(controlFrame{kind: frameDo, doPC: pc})
}

// doLoop lowers LOOP (implicit "1 +") and +LOOP (the advance already on
// the stack) via the same shape: pop both counters back off the return
// stack, advance the index, compare against the limit with both
// originals preserved, then either restore them and jump back, or fall
// through to the shared drop that every LEAVE site also targets.
func (g *generator) doLoop(plusLoop bool) error {
	top := g.ctrl.top()
	if top == nil || top.kind != frameDo {
		if plusLoop {
			return errf(PLoopWithoutDo, "+LOOP without a matching DO")
		}
		return errf(LoopWithoutDo, "LOOP without a matching DO")
	}
	frame := g.ctrl.pop()
	g.trace.Event("pop DO frame for %s", map[bool]string{true: "+LOOP", false: "LOOP"}[plusLoop])
	cur := g.cursor()

	emitOp(cur, opcode.FROMR) // newIndex (or old index, about to be advanced)
	if plusLoop {
		emitOp(cur, opcode.ADD)
	} else {
		emitOp(cur, opcode.LIT)
		cur.EmitI32LE(1)
		emitOp(cur, opcode.ADD)
	}
	emitOp(cur, opcode.FROMR) // limit; stack: newIndex limit
	emitOp(cur, opcode.OVER)
	emitOp(cur, opcode.OVER)
	emitOp(cur, opcode.LT)
	emitOp(cur, opcode.JZ)
	jz := emitRel16Placeholder(cur)
	emitOp(cur, opcode.TOR)
	emitOp(cur, opcode.TOR)
	emitOp(cur, opcode.JMP)
	back := emitRel16Placeholder(cur)
	patchRel16(cur, back, frame.doPC)
	g.trace.Event("patch JMP @%d -> %d", back, frame.doPC)

	exitDrop := cur.Here()
	patchRel16(cur, jz, exitDrop)
	g.trace.Event("patch JZ @%d -> %d", jz, exitDrop)
	emitOp(cur, opcode.DROP)
	emitOp(cur, opcode.DROP)

	exitDone := cur.Here()
	for i := 0; i < frame.leaveCount; i++ {
		patchRel16(cur, frame.leavePatches[i], exitDone)
		g.trace.Event("patch LEAVE JMP @%d -> %d", frame.leavePatches[i], exitDone)
	}
	return nil
}

// doLeave discards the loop's two return-stack cells itself, since the
// shared exitDrop at the bottom of LOOP/+LOOP must not run twice for a
// LEAVE that jumps straight past it.
func (g *generator) doLeave() error {
	top := g.ctrl.top()
	if top == nil || top.kind != frameDo {
		return errf(LeaveWithoutDo, "LEAVE outside any DO...LOOP")
	}
	if top.leaveCount >= maxLeavePatches {
		return errf(LeaveDepthExceeded, "too many LEAVE statements in one DO...LOOP")
	}
	cur := g.cursor()
	emitOp(cur, opcode.FROMR)
	emitOp(cur, opcode.FROMR)
	emitOp(cur, opcode.DROP)
	emitOp(cur, opcode.DROP)
	emitOp(cur, opcode.JMP)
	patch := emitRel16Placeholder(cur)
	top.leavePatches[top.leaveCount] = patch
	top.leaveCount++
	g.trace.Event("record LEAVE patch site @%d (pending until LOOP)", patch)
	return nil
}

func (g *generator) doExit() error {
	emitOp(g.cursor(), opcode.RET)
	return nil
}
