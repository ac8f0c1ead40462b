// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchmaker turns a satisfied queue group into a match record.
package matchmaker

import (
	"github.com/Voidixx/OctanesCore/pkg/envelope"
	"github.com/Voidixx/OctanesCore/pkg/models"
)

// Former is the formation contract the drain loop calls into: given a
// validated group of exactly the format's required player count, assign the
// players to two sides and persist a ready match record.
type Former interface {
	Form(scope *envelope.Scope, group []models.QueueEntry, format models.Format, mode string) (models.MatchRecord, error)
}
