package utils

import "github.com/google/uuid"

// NewID 实体主键统一用 uuid
func NewID() string { return uuid.NewString() }
