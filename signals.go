package xjson

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for deserialization events.
var (
	SignalDecodeStart    = capitan.NewSignal("xjson.decode.start", "Deserialization beginning")
	SignalDecodeComplete = capitan.NewSignal("xjson.decode.complete", "Deserialization finished")
	SignalTranscodeDone  = capitan.NewSignal("xjson.transcode.done", "XJSON transcoded to canonical JSON")
	SignalResolveMiss    = capitan.NewSignal("xjson.resolve.miss", "Type name failed to resolve")
	SignalMemberDropped  = capitan.NewSignal("xjson.member.dropped", "Object member had no matching target member")
	SignalVersionChecked = capitan.NewSignal("xjson.version.checked", "Version tag compared against engine version")
)

// Keys for typed event data.
var (
	KeyTypeName   = capitan.NewStringKey("type_name")
	KeyAlias      = capitan.NewStringKey("alias")
	KeyMember     = capitan.NewStringKey("member")
	KeyVersion    = capitan.NewStringKey("version")
	KeyMajor      = capitan.NewIntKey("major")
	KeySize       = capitan.NewIntKey("size")
	KeyStatements = capitan.NewIntKey("statements")
	KeyInjected   = capitan.NewStringKey("injected")
	KeyQualified  = capitan.NewStringKey("qualified")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// emitDecodeStart emits an event when a deserialization call begins.
func emitDecodeStart(typeName string, size int) {
	capitan.Emit(context.Background(), SignalDecodeStart,
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
	)
}

// emitDecodeComplete emits an event when a deserialization call finishes.
func emitDecodeComplete(typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(context.Background(), SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(context.Background(), SignalDecodeComplete, fields...)
	}
}

// emitTranscodeDone emits an event after XJSON text is rewritten.
func emitTranscodeDone(statements int, injected string) {
	capitan.Emit(context.Background(), SignalTranscodeDone,
		KeyStatements.Field(statements),
		KeyInjected.Field(injected),
	)
}

// emitResolveMiss emits an event when a type name fails to resolve.
func emitResolveMiss(alias string, qualifiedTried bool) {
	q := "disabled"
	if qualifiedTried {
		q = "missed"
	}
	capitan.Error(context.Background(), SignalResolveMiss,
		KeyAlias.Field(alias),
		KeyQualified.Field(q),
	)
}

// emitMemberDropped emits an event when a member has no binding target.
func emitMemberDropped(typeName, member string) {
	capitan.Emit(context.Background(), SignalMemberDropped,
		KeyTypeName.Field(typeName),
		KeyMember.Field(member),
	)
}

// emitVersionChecked emits an event after the version gate runs.
func emitVersionChecked(declared string, major int, rejected bool) {
	fields := []capitan.Field{
		KeyVersion.Field(declared),
		KeyMajor.Field(major),
	}
	if rejected {
		capitan.Error(context.Background(), SignalVersionChecked, fields...)
	} else {
		capitan.Emit(context.Background(), SignalVersionChecked, fields...)
	}
}
