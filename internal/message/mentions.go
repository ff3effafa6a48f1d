package message

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sparkchat/sparkd/internal/database"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

const everyoneMention = "everyone"

// resolveMentions resolves @name tokens in content. "@everyone"
// (case-insensitive) expands to every room member except the sender; any
// other @name is looked up among registered users, member or not. Unknown
// names are dropped and the sender is never mentioned by their own message.
func (s *Service) resolveMentions(content string, members []database.User, senderId string) ([]database.User, error) {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var mentioned []database.User
	add := func(user database.User) {
		if user.Id == senderId {
			return
		}
		if _, ok := seen[user.Id]; ok {
			return
		}
		seen[user.Id] = struct{}{}
		mentioned = append(mentioned, user)
	}

	for _, match := range matches {
		name := match[1]
		if strings.EqualFold(name, everyoneMention) {
			for _, m := range members {
				add(m)
			}
			continue
		}
		user, err := s.db.GetUserByUsername(name)
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve mention: %w", err)
		}
		add(user)
	}

	return mentioned, nil
}
