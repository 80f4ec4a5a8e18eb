package client

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ventas-crm/tracker/model"
)

// ErrNoIdentity トークンから識別情報を取り出せない
var ErrNoIdentity = errors.New("no identity in token")

// DecodeToken CRMのセッショントークンを検証せずにデコードして識別情報を返します
//
// subは数値または数値文字列, rolはロール名, nombreは任意
func DecodeToken(token string) (model.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return model.Anonymous, fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}

	userID, err := subjectAsInt(claims["sub"])
	if err != nil {
		return model.Anonymous, fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}
	rol, _ := claims["rol"].(string)
	role, err := model.ParseRole(rol)
	if err != nil {
		return model.Anonymous, fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}
	name, _ := claims["nombre"].(string)

	return model.Identity{UserID: userID, Name: name, Role: role}, nil
}

func subjectAsInt(v interface{}) (int, error) {
	switch sub := v.(type) {
	case float64:
		if sub <= 0 || sub != float64(int(sub)) {
			return 0, fmt.Errorf("invalid sub: %v", sub)
		}
		return int(sub), nil
	case string:
		id, err := strconv.Atoi(sub)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("invalid sub: %q", sub)
		}
		return id, nil
	case nil:
		return 0, errors.New("sub is missing")
	default:
		return 0, fmt.Errorf("unexpected sub type: %T", v)
	}
}
