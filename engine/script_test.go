package engine

import "testing"

const completeScript = `default {
    state_entry() {
        llSay(0, "hola");
    }
}`

func TestLooksLikeScript(t *testing.T) {
	if !LooksLikeScript(completeScript) {
		t.Fatal("complete script not detected")
	}
	if !LooksLikeScript("llOwnerSay(\"hi\");") {
		t.Fatal("ll-call snippet not detected")
	}
	if !LooksLikeScript("touch_start(integer n) {}") {
		t.Fatal("event handler not detected")
	}
	if LooksLikeScript("me gustan los zorros") {
		t.Fatal("plain chat misdetected as script")
	}
}

func TestIsIncompleteMissingDefaultBeatsBraceBalance(t *testing.T) {
	// Balanced braces but no default block: still incomplete.
	if !IsIncomplete("state_entry() { llSay(0, \"x\"); }") {
		t.Fatal("missing default block must read as incomplete")
	}
	if !IsIncomplete("default { state_entry() { llSay(0, \"x\"); }") {
		t.Fatal("unbalanced braces must read as incomplete")
	}
	if IsIncomplete(completeScript) {
		t.Fatal("complete script misread as incomplete")
	}
}

func TestRiskFlags(t *testing.T) {
	flags := RiskFlags(`default {
		state_entry() {
			llSensorRepeat("", "", AGENT, 10.0, PI, 5.0);
			llSetTimerEvent(1.0);
			llListen(0, "", NULL_KEY, "");
		}
	}`)
	if len(flags) != 3 {
		t.Fatalf("expected 3 risks, got %v", flags)
	}

	if flags := RiskFlags(completeScript); len(flags) != 0 {
		t.Fatalf("expected no risks, got %v", flags)
	}

	// A timer stopped with 0.0 does not flag.
	if flags := RiskFlags("default { timer() { llSetTimerEvent(0.0); } }"); len(flags) != 0 {
		t.Fatalf("zeroed timer should not flag, got %v", flags)
	}

	// llListen paired with llListenRemove does not leak.
	if flags := RiskFlags("default { state_entry() { llListenRemove(llListen(0, \"\", NULL_KEY, \"\")); } }"); len(flags) != 0 {
		t.Fatalf("removed listener should not flag, got %v", flags)
	}
}

func TestSelectModePriority(t *testing.T) {
	// Incomplete wins even when risks are present.
	mode, _ := SelectMode("llSetTimerEvent(5.0);")
	if mode != ModeCompleteness {
		t.Fatalf("expected completeness, got %s", mode)
	}

	mode, risks := SelectMode("default { timer() { llSetTimerEvent(5.0); } }")
	if mode != ModePerformance {
		t.Fatalf("expected performance, got %s", mode)
	}
	if len(risks) != 1 || risks[0] != RiskTimerLoop {
		t.Fatalf("unexpected risks: %v", risks)
	}

	mode, _ = SelectMode(completeScript + "\n// quiero bajo lag")
	if mode != ModeConstrained {
		t.Fatalf("expected constrained, got %s", mode)
	}

	mode, _ = SelectMode(completeScript)
	if mode != ModeRewrite {
		t.Fatalf("expected rewrite, got %s", mode)
	}
}
